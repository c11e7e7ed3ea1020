package qhsedoc

import (
	"context"
	"fmt"
	"time"

	"github.com/hospiops/facilityhub/internal/platform/alerts"
	"github.com/hospiops/facilityhub/pkg/kpi"
)

type Service struct {
	repo       Repository
	windowDays int
	now        func() time.Time
}

func NewService(repo Repository, windowDays int) *Service {
	return &Service{repo: repo, windowDays: windowDays, now: time.Now}
}

// List returns the documentary base with computed flags.
func (s *Service) List(ctx context.Context) ([]View, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]View, len(docs))
	for i, d := range docs {
		views[i] = NewView(d, now, s.windowDays)
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewView(*doc, s.now(), s.windowDays)
	return &v, nil
}

// Create registers a new document. Every document starts as a draft.
func (s *Service) Create(ctx context.Context, doc *QHSEDocument, authorID string) error {
	if doc.Code == "" {
		return fmt.Errorf("le code du document est obligatoire")
	}
	if doc.Title == "" {
		return fmt.Errorf("le titre du document est obligatoire")
	}
	doc.Status = StatusBrouillon
	doc.CreatedBy = authorID
	return s.repo.Create(ctx, doc)
}

// Update edits document metadata without touching its status.
func (s *Service) Update(ctx context.Context, doc *QHSEDocument) error {
	if doc.ID == "" {
		return fmt.Errorf("l'identifiant est obligatoire")
	}
	current, err := s.repo.GetByID(ctx, doc.ID)
	if err != nil {
		return err
	}
	doc.Status = current.Status
	return s.repo.Update(ctx, doc)
}

// Transition moves a document to a new status, enforcing the lifecycle
// and the validation gate. Approving a document requires a validator
// role; the check happens before any upstream call.
func (s *Service) Transition(ctx context.Context, id, to string, roles []string) (*View, error) {
	if !ValidStatus(to) {
		return nil, fmt.Errorf("statut invalide: %q", to)
	}
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(doc.Status, to) {
		return nil, fmt.Errorf("transition interdite: %s vers %s", doc.Status, to)
	}
	if to == StatusValide && !CanValidate(roles) {
		return nil, ErrValidationForbidden
	}
	doc.Status = to
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	v := NewView(*doc, s.now(), s.windowDays)
	return &v, nil
}

// ErrValidationForbidden is returned when a non-validator attempts to
// approve a document.
var ErrValidationForbidden = fmt.Errorf("la validation des documents est réservée aux superviseurs QHSE")

// Summary is the compliance overview of the documentary base.
type Summary struct {
	Total          int             `json:"total"`
	Expired        int             `json:"expired"`
	ExpiringSoon   int             `json:"expiring_soon"`
	ReviewDueSoon  int             `json:"review_due_soon"`
	ComplianceRate string          `json:"compliance_rate"`
	ByStatus       []kpi.NameValue `json:"by_status"`
	ByType         []kpi.NameValue `json:"by_type"`
}

// Summarize computes the compliance overview. A document counts as
// compliant when it is approved and not past its validity date.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	views, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		Total:    len(views),
		ByStatus: kpi.GroupCount(views, func(v View) string { return v.Status }),
		ByType:   kpi.GroupCount(views, func(v View) string { return v.DocumentType }),
	}
	compliant := 0
	for _, v := range views {
		if v.Expired {
			sum.Expired++
		}
		if v.ExpiringSoon {
			sum.ExpiringSoon++
		}
		if v.ReviewDueSoon {
			sum.ReviewDueSoon++
		}
		if v.Status == StatusValide && !v.Expired {
			compliant++
		}
	}
	sum.ComplianceRate = kpi.Rate(compliant, len(views))
	return sum, nil
}

// AlertDocuments maps the documentary base into the alert engine's
// input shape.
func (s *Service) AlertDocuments(ctx context.Context) ([]alerts.Document, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]alerts.Document, len(docs))
	for i, d := range docs {
		out[i] = alerts.Document{
			ID:           d.ID,
			Code:         d.Code,
			Title:        d.Title,
			Status:       d.Status,
			ValidityDate: d.ValidityDate.Ptr(),
			ReviewDate:   d.ReviewDate.Ptr(),
		}
	}
	return out, nil
}
