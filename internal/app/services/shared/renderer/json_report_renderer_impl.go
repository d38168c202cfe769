package renderer

import (
	"context"
	"hospital-lab-service/internal/app/contracts"
	"hospital-lab-service/internal/pkg/constvars"
	"hospital-lab-service/internal/pkg/dto/responses"
	"hospital-lab-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

const reportDocumentType = "lab-report"

type reportDocument struct {
	DocumentType string                   `json:"documentType"`
	RenderedAt   time.Time                `json:"renderedAt"`
	Content      *responses.LabReportView `json:"content"`
}

type jsonReportRenderer struct {
	now func() time.Time
}

// NewJSONReportRenderer renders a report view as an indented JSON document.
func NewJSONReportRenderer() contracts.ReportRenderer {
	return &jsonReportRenderer{now: time.Now}
}

func (r *jsonReportRenderer) Render(ctx context.Context, view *responses.LabReportView) ([]byte, error) {
	if view == nil || view.Report == nil {
		return nil, exceptions.ErrRenderReportDocument(nil)
	}

	document := reportDocument{
		DocumentType: reportDocumentType,
		RenderedAt:   r.now().UTC(),
		Content:      view,
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, exceptions.ErrRenderReportDocument(err)
	}
	return data, nil
}

func (r *jsonReportRenderer) ContentType() string {
	return constvars.MIMEApplicationJSON
}

func (r *jsonReportRenderer) FileExtension() string {
	return ".json"
}
