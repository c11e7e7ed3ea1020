package hygiene

import (
	"context"
	"fmt"

	"github.com/hospiops/facilityhub/pkg/kpi"
)

type Service struct {
	cycles  CycleRepository
	waste   WasteRepository
	laundry LaundryRepository
}

func NewService(cycles CycleRepository, waste WasteRepository, laundry LaundryRepository) *Service {
	return &Service{cycles: cycles, waste: waste, laundry: laundry}
}

func (s *Service) ListCycles(ctx context.Context) ([]SterilizationCycle, error) {
	return s.cycles.List(ctx)
}

func (s *Service) GetCycle(ctx context.Context, id string) (*SterilizationCycle, error) {
	return s.cycles.GetByID(ctx, id)
}

// RecordCycle registers a sterilization run. The control result
// defaults to en_attente until read.
func (s *Service) RecordCycle(ctx context.Context, c *SterilizationCycle) error {
	if c.CycleNumber == "" {
		return fmt.Errorf("le numéro de cycle est obligatoire")
	}
	if c.Result == "" {
		c.Result = CycleEnAttente
	} else if !ValidCycleResult(c.Result) {
		return fmt.Errorf("résultat invalide: %q", c.Result)
	}
	return s.cycles.Create(ctx, c)
}

// SetCycleResult records the control outcome of a cycle.
func (s *Service) SetCycleResult(ctx context.Context, id, result string) (*SterilizationCycle, error) {
	if !ValidCycleResult(result) {
		return nil, fmt.Errorf("résultat invalide: %q", result)
	}
	c, err := s.cycles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Result = result
	if err := s.cycles.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListWaste(ctx context.Context) ([]MedicalWaste, error) {
	return s.waste.List(ctx)
}

// RecordWaste registers a collection. DASRI collections require a
// regulatory tracking slip number.
func (s *Service) RecordWaste(ctx context.Context, w *MedicalWaste) error {
	if !ValidWasteType(w.Type) {
		return fmt.Errorf("catégorie de déchet invalide: %q", w.Type)
	}
	if w.QuantityKg <= 0 {
		return fmt.Errorf("la quantité doit être positive")
	}
	if w.Type == WasteDASRI && w.TrackingSlip == "" {
		return fmt.Errorf("un bordereau de suivi est obligatoire pour les DASRI")
	}
	return s.waste.Create(ctx, w)
}

func (s *Service) ListLaundry(ctx context.Context) ([]LaundryTracking, error) {
	return s.laundry.List(ctx)
}

func (s *Service) RecordLaundry(ctx context.Context, l *LaundryTracking) error {
	if !ValidLaundryDirection(l.Direction) {
		return fmt.Errorf("sens de flux invalide: %q", l.Direction)
	}
	if l.QuantityKg <= 0 {
		return fmt.Errorf("la quantité doit être positive")
	}
	return s.laundry.Create(ctx, l)
}

// Summary is the hygiene traceability overview.
type Summary struct {
	Cycles              int             `json:"cycles"`
	CycleConformityRate string          `json:"cycle_conformity_rate"`
	PendingControls     int             `json:"pending_controls"`
	WasteCollections    int             `json:"waste_collections"`
	WasteByType         []kpi.NameValue `json:"waste_by_type"`
	DASRIKg             float64         `json:"dasri_kg"`
	LaundrySentKg       float64         `json:"laundry_sent_kg"`
	LaundryReturnedKg   float64         `json:"laundry_returned_kg"`
}

// Summarize aggregates the three registers. The conformity rate only
// counts cycles whose control result is known.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	cycles, err := s.cycles.List(ctx)
	if err != nil {
		return nil, err
	}
	waste, err := s.waste.List(ctx)
	if err != nil {
		return nil, err
	}
	laundry, err := s.laundry.List(ctx)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Cycles:           len(cycles),
		WasteCollections: len(waste),
		WasteByType:      kpi.GroupCount(waste, func(w MedicalWaste) string { return w.Type }),
	}
	var conforme, controlled int
	for _, c := range cycles {
		switch c.Result {
		case CycleConforme:
			conforme++
			controlled++
		case CycleNonConforme:
			controlled++
		default:
			sum.PendingControls++
		}
	}
	sum.CycleConformityRate = kpi.Rate(conforme, controlled)
	for _, w := range waste {
		if w.Type == WasteDASRI {
			sum.DASRIKg += w.QuantityKg
		}
	}
	for _, l := range laundry {
		switch l.Direction {
		case LaundryDepart:
			sum.LaundrySentKg += l.QuantityKg
		case LaundryRetour:
			sum.LaundryReturnedKg += l.QuantityKg
		}
	}
	return sum, nil
}
