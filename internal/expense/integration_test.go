package expense

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/smartexpense/tracker/internal/extraction"
)

// End-to-end over a real BoltDB with fake extraction providers: every HTTP
// round trip below hits the same store the scan pipeline writes to.
var _ = Describe("end to end", func() {
	var (
		db          *BoltDB
		server      *Server
		ghttpServer *ghttp.Server
	)

	BeforeEach(func() {
		var err error
		db, err = NewBoltDB(filepath.Join(GinkgoT().TempDir(), "e2e.db"))
		Expect(err).NotTo(HaveOccurred())

		text := &mockTextProvider{text: "TRADER JOES\nTOTAL 23.45"}
		fields := &mockFieldProvider{candidate: extraction.Candidate{
			Amount:   23.45,
			Category: "Groceries",
			Date:     "2025-03-05",
		}}
		service := NewService(db, text, fields, &mockInsightsProvider{summary: "ok"})
		server = NewServerWithMux(service, BasicAuth{}, http.NewServeMux())

		ghttpServer = ghttp.NewServer()
		// One handler per request below
		for i := 0; i < 4; i++ {
			ghttpServer.AppendHandlers(server.ServeHTTP)
		}
	})

	AfterEach(func() {
		ghttpServer.Close()
		db.Close()
	})

	It("scans, lists, and aggregates through the store", func() {
		// Scan a receipt
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", "receipt.jpg")
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write([]byte("jpeg-bytes"))
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())

		req, err := http.NewRequest("POST", ghttpServer.URL()+"/api/expenses/scan", &body)
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		// Add a fixed expense
		resp, err = http.Post(ghttpServer.URL()+"/api/fixed-expenses", "application/json",
			bytes.NewBufferString(`{"amount": 900, "category": "Rent"}`))
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		// The scanned record is listed
		resp, err = http.Get(ghttpServer.URL() + "/api/expenses")
		Expect(err).NotTo(HaveOccurred())
		var listed []Expense
		Expect(json.NewDecoder(resp.Body).Decode(&listed)).To(Succeed())
		resp.Body.Close()
		Expect(listed).To(HaveLen(1))
		Expect(listed[0].Amount).To(Equal(23.45))

		// Both records land in the month's breakdown
		resp, err = http.Get(ghttpServer.URL() + "/api/statistics?month=3&year=2025")
		Expect(err).NotTo(HaveOccurred())
		var breakdown Breakdown
		Expect(json.NewDecoder(resp.Body).Decode(&breakdown)).To(Succeed())
		resp.Body.Close()
		Expect(breakdown.Totals).To(Equal(map[string]float64{"Groceries": 23.45, "Rent": 900}))
		Expect(breakdown.GrandTotal).To(BeNumerically("~", 923.45, 1e-9))
	})
})
