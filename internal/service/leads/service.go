package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	leadRepo "github.com/psicoagenda/booking-service/internal/infra/storage/lead"
	"github.com/psicoagenda/booking-service/internal/service/leads/models"
)

// Service covers the administrative lead operations. Conversion itself is
// driven by the webhook flow; this service only reads, closes and purges.
type Service struct {
	leadRepo LeadRepository
	logger   Logger
}

func NewService(leadRepo LeadRepository, logger Logger) *Service {
	return &Service{
		leadRepo: leadRepo,
		logger:   logger,
	}
}

// GetByID fetches one lead
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.LeadResponse, error) {
	lead, err := s.getLead(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainLead(lead), nil
}

// List returns leads matching the filter, newest first
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.LeadListResponse, error) {
	filter := domain.LeadFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Email:     req.Email,
	}
	if req.Status != nil {
		status := domain.LeadStatus(strings.ToLower(*req.Status))
		if !domain.ValidLeadStatus(status) {
			s.logger.Warn("List: invalid status filter %q", *req.Status)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	found, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d leads", len(found))
	return models.FromDomainLeads(found), nil
}

// UpdateStatus moves a lead to a new status manually. Converted leads are
// frozen; their history belongs to the booking.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.LeadResponse, error) {
	status := domain.LeadStatus(strings.ToLower(req.Status))
	if !domain.ValidLeadStatus(status) {
		s.logger.Warn("UpdateStatus: invalid status %q for lead %s", req.Status, req.LeadID)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if status == domain.LeadConverted {
		return nil, fmt.Errorf("%w: conversion only happens through payment", ErrInvalidInput)
	}

	lead, err := s.getLead(ctx, req.LeadID, "UpdateStatus")
	if err != nil {
		return nil, err
	}
	if lead.IsConverted() {
		s.logger.Warn("UpdateStatus: lead %s already converted", req.LeadID)
		return nil, ErrConverted
	}

	if err := s.leadRepo.UpdateStatus(ctx, req.LeadID, status); err != nil {
		s.logger.Error("UpdateStatus: repository error for lead %s: %v", req.LeadID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: lead %s moved %s -> %s", req.LeadID, lead.Status, status)
	lead.Status = status
	return models.FromDomainLead(lead), nil
}

// Purge removes a lead permanently. Intended for data removal requests;
// converted leads keep their snapshot until the linked booking is dealt with.
func (s *Service) Purge(ctx context.Context, id uuid.UUID) error {
	lead, err := s.getLead(ctx, id, "Purge")
	if err != nil {
		return err
	}
	if lead.IsConverted() {
		s.logger.Warn("Purge: lead %s is converted, refusing", id)
		return ErrConverted
	}

	if err := s.leadRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Purge: repository error for lead %s: %v", id, err)
		return fmt.Errorf("%w: Purge - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Purge: lead %s removed", id)
	return nil
}

func (s *Service) getLead(ctx context.Context, id uuid.UUID, op string) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			s.logger.Warn("%s: lead %s not found", op, id)
			return nil, ErrLeadNotFound
		}
		s.logger.Error("%s: repository error for lead %s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return lead, nil
}
