package models

import (
	"time"

	"github.com/psicoagenda/booking-service/internal/domain"
)

// WindowRequest is one offerable window in a configure call
type WindowRequest struct {
	Start  string `json:"inicio"`
	End    string `json:"fim"`
	Active bool   `json:"ativo"`
}

// ConfigureRequest replaces the template of one weekday
type ConfigureRequest struct {
	Weekday int             `json:"diaSemana"` // 0=Sunday .. 6=Saturday
	Windows []WindowRequest `json:"janelas"`
	Active  bool            `json:"ativo"`
}

// WindowResponse mirrors a stored window
type WindowResponse struct {
	Start  string `json:"inicio"`
	End    string `json:"fim"`
	Active bool   `json:"ativo"`
}

// TemplateResponse is the API representation of a weekday template
type TemplateResponse struct {
	Weekday   int              `json:"diaSemana"`
	Windows   []WindowResponse `json:"janelas"`
	Active    bool             `json:"ativo"`
	UpdatedAt time.Time        `json:"atualizadoEm"`
}

// TemplateListResponse wraps the active templates
type TemplateListResponse struct {
	Templates []*TemplateResponse `json:"disponibilidades"`
	Total     int                 `json:"total"`
}

// FromDomainTemplate converts a domain template to its API representation
func FromDomainTemplate(t *domain.AvailabilityTemplate) *TemplateResponse {
	resp := &TemplateResponse{
		Weekday:   int(t.Weekday),
		Active:    t.Active,
		UpdatedAt: t.UpdatedAt,
	}
	for _, w := range t.Windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			Start:  w.Start.String(),
			End:    w.End.String(),
			Active: w.Active,
		})
	}
	return resp
}

// FromDomainTemplates converts a slice of domain templates
func FromDomainTemplates(ts []*domain.AvailabilityTemplate) *TemplateListResponse {
	out := make([]*TemplateResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromDomainTemplate(t))
	}
	return &TemplateListResponse{Templates: out, Total: len(out)}
}
