package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avash81/mindmeter-iq-app/internal/model"
	"github.com/avash81/mindmeter-iq-app/internal/repository"
	"github.com/avash81/mindmeter-iq-app/internal/util"
	"github.com/avash81/mindmeter-iq-app/pkg/logger"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CertificateService renders the downloadable achievement certificate for a
// finished result. The layout mirrors the product design: double ruled A4
// border, title, holder name, IQ score, short session id footer.
type CertificateService struct {
	Results *repository.ResultRepository
	Storage *StorageService
}

func NewCertificateService(results *repository.ResultRepository, storage *StorageService) *CertificateService {
	return &CertificateService{Results: results, Storage: storage}
}

type CertificateRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email"`
}

// Render produces the PDF bytes and a suggested filename. A copy is archived
// through the storage provider when one is configured.
func (s *CertificateService) Render(ctx context.Context, req CertificateRequest) ([]byte, string, error) {
	result, err := s.Results.FindBySessionID(req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrResultNotFound
		}
		return nil, "", err
	}

	data, err := renderCertificatePDF(result, req.Name)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("MindMeter_Certificate_%s.pdf", strings.ReplaceAll(req.Name, " ", "_"))

	if s.Storage != nil {
		archiveName := fmt.Sprintf("%s/%s", result.SessionID, filename)
		if _, err := s.Storage.Archive(ctx, archiveName, data, "application/pdf"); err != nil {
			logger.Log.Warn("failed to archive certificate",
				zap.String("sessionId", result.SessionID), zap.Error(err))
		}
	}

	return data, filename, nil
}

func renderCertificatePDF(result *model.TestResult, holderName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageW, pageH := 210.0, 297.0

	// Double border.
	pdf.SetDrawColor(124, 58, 237)
	pdf.SetLineWidth(1.1)
	pdf.Rect(14, 14, pageW-28, pageH-28, "D")

	pdf.SetDrawColor(236, 72, 153)
	pdf.SetLineWidth(0.4)
	pdf.Rect(18, 18, pageW-36, pageH-36, "D")

	centered := func(y float64, text string) {
		pdf.SetXY(0, y)
		pdf.CellFormat(pageW, 10, text, "", 0, "C", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 32)
	centered(40, "Certificate of Achievement")

	pdf.SetFont("Helvetica", "", 15)
	centered(56, "MindMeter Intelligence Test")

	pdf.SetFont("Helvetica", "B", 26)
	centered(96, holderName)

	pdf.SetFont("Helvetica", "", 13)
	centered(118, "has successfully completed the MindMeter assessment")

	pdf.SetFont("Helvetica", "", 15)
	centered(136, "IQ Score")

	pdf.SetFont("Helvetica", "B", 38)
	pdf.SetTextColor(124, 58, 237)
	centered(152, fmt.Sprintf("%d", result.IQScore))

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(0, 0, 0)
	centered(172, fmt.Sprintf("%s - Percentile %d", result.Label, result.Percentile))

	pdf.SetFont("Helvetica", "", 9)
	shortID := result.SessionID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	centered(pageH - 40, "MindMeter - Intelligence Testing Platform")
	centered(pageH - 34, fmt.Sprintf("Session: %s", shortID))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
