package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"safariconnector/internal/lifecycle"
	"safariconnector/internal/repositories"
	"safariconnector/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// DocsService renders trip itinerary and booking invoice PDFs.
type DocsService struct {
	TripRepo     repositories.TripRepository
	BookingRepo  repositories.BookingRepository
	OperatorRepo repositories.OperatorRepository
	RequestID    string

	// Loaders allow tests to feed document data without a database.
	ItineraryLoader func(int64) (itineraryDocData, error)
	InvoiceLoader   func(int64) (invoiceDocData, error)
}

type itineraryDocData struct {
	TripID       int64
	Title        string
	Country      string
	OperatorName string
	DurationDays int
	MinPax       int
	MaxPax       int
	Summary      string
	Days         []itineraryDay
	Rates        []itineraryRate
}

type itineraryDay struct {
	Number int
	Title  string
	Detail string
}

type itineraryRate struct {
	SeasonStart string
	SeasonEnd   string
	PricePerPax decimal.Decimal
	Currency    string
}

type invoiceDocData struct {
	BookingID    int64
	TripTitle    string
	OperatorName string
	DateFrom     string
	DateTo       string
	Pax          int
	Amount       decimal.Decimal
	Currency     string
	Status       string
	PaymentNote  string
}

func (s DocsService) GenerateItinerary(tripID int64) ([]byte, string, error) {
	data, err := s.loadItineraryData(tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_itinerary", fmt.Sprintf("trip_id=%d", tripID))
	return buildItineraryPDF(data)
}

func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	data, err := s.loadInvoiceData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

func (s DocsService) loadItineraryData(tripID int64) (itineraryDocData, error) {
	if s.ItineraryLoader != nil {
		return s.ItineraryLoader(tripID)
	}
	trip, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return itineraryDocData{}, err
	}
	out := itineraryDocData{
		TripID:       trip.ID,
		Title:        trip.Title,
		Country:      trip.Country,
		DurationDays: trip.DurationDays,
		MinPax:       trip.MinPax,
		MaxPax:       trip.MaxPax,
		Summary:      trip.Summary,
	}
	if op, err := s.OperatorRepo.GetByID(trip.OperatorID); err == nil {
		out.OperatorName = op.Name
	}
	for _, d := range trip.Days {
		out.Days = append(out.Days, itineraryDay{Number: d.DayNumber, Title: d.Title, Detail: d.Detail})
	}
	for _, r := range trip.Rates {
		out.Rates = append(out.Rates, itineraryRate{
			SeasonStart: r.SeasonStart,
			SeasonEnd:   r.SeasonEnd,
			PricePerPax: r.PricePerPax,
			Currency:    r.Currency,
		})
	}
	return out, nil
}

func (s DocsService) loadInvoiceData(bookingID int64) (invoiceDocData, error) {
	if s.InvoiceLoader != nil {
		return s.InvoiceLoader(bookingID)
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return invoiceDocData{}, err
	}
	out := invoiceDocData{
		BookingID: b.ID,
		DateFrom:  b.DateFrom,
		DateTo:    b.DateTo,
		Pax:       b.Pax,
		Amount:    b.Amount,
		Currency:  b.Currency,
	}
	if status, perr := lifecycle.ParseStatus(b.Status); perr == nil {
		payment, _ := lifecycle.ParsePaymentStatus(b.PaymentStatus)
		out.Status = lifecycle.Interpret(status, payment).Label
	}
	if trip, err := s.TripRepo.GetByID(b.TripID); err == nil {
		out.TripTitle = trip.Title
	}
	if op, err := s.OperatorRepo.GetByID(b.OperatorID); err == nil {
		out.OperatorName = op.Name
	}
	return out, nil
}

func buildItineraryPDF(d itineraryDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Itinerary", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, safe(d.Title, "ITINERARY"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Operator : %s", safe(d.OperatorName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Country  : %s", safe(d.Country, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Duration : %d days, %d-%d pax", d.DurationDays, d.MinPax, d.MaxPax))
	pdf.Ln(10)

	if strings.TrimSpace(d.Summary) != "" {
		pdf.MultiCell(0, 6, d.Summary, "", "", false)
		pdf.Ln(4)
	}

	for _, day := range d.Days {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("Day %d: %s", day.Number, safe(day.Title, "-")))
		pdf.Ln(7)
		if strings.TrimSpace(day.Detail) != "" {
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, day.Detail, "", "", false)
		}
		pdf.Ln(2)
	}

	if len(d.Rates) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Seasonal rates (per pax):")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, r := range d.Rates {
			pdf.Cell(0, 6, fmt.Sprintf("%s to %s: %s", r.SeasonStart, r.SeasonEnd, utils.FormatAmount(r.PricePerPax, r.Currency)))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ITINERARY_%d_%s.pdf", d.TripID, safeFilenamePart(d.Title))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d invoiceDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("No Invoice : INV-%d", d.BookingID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	desc := fmt.Sprintf("Safari booking: %s with %s, %s to %s, %d pax",
		safe(d.TripTitle, "-"), safe(d.OperatorName, "-"),
		safe(d.DateFrom, "-"), safe(d.DateTo, "-"), d.Pax,
	)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, "Status: "+safe(d.Status, "-"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatAmount(d.Amount, d.Currency))
	pdf.Ln(12)

	if strings.TrimSpace(d.PaymentNote) != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, d.PaymentNote, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%d.pdf", d.BookingID)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
