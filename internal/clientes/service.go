package clientes

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/odyssey-erp/clientes/internal/platform/httpx"
)

// Recorder counts service outcomes per operation.
type Recorder interface {
	RecordOperation(operation, outcome string)
}

// ServiceConfig carries optional collaborators; zero values get safe defaults.
type ServiceConfig struct {
	Logger    *slog.Logger
	Clock     Clock
	Validator *Validator
	Publisher Publisher
	Recorder  Recorder
}

// Service orchestrates validation and repository mutations for clientes.
type Service struct {
	repo      Repository
	logger    *slog.Logger
	clock     Clock
	validator *Validator
	publisher Publisher
	recorder  Recorder
}

func NewService(repo Repository, cfg ServiceConfig) *Service {
	s := &Service{
		repo:      repo,
		logger:    cfg.Logger,
		clock:     cfg.Clock,
		validator: cfg.Validator,
		publisher: cfg.Publisher,
		recorder:  cfg.Recorder,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.clock == nil {
		s.clock = SystemClock
	}
	if s.validator == nil {
		s.validator = NewValidator(s.clock)
	}
	if s.publisher == nil {
		s.publisher = NopPublisher{}
	}
	return s
}

// Create validates req and stores a new cliente. A missing or empty required field is
// incomplete; a blank empresa is stored as absent. Checks run in a fixed order and the
// first failure wins: completeness, each field validator, then email uniqueness.
func (s *Service) Create(ctx context.Context, req CreateClienteRequest) (*Cliente, error) {
	if !req.complete() {
		return nil, s.fail("create", ErrIncomplete)
	}
	if err := s.validator.Validate(UpdateClienteRequest(req)); err != nil {
		return nil, s.fail("create", err)
	}

	pais, _ := ParsePais(*req.Pais)
	estado, _ := ParseEstado(*req.Estado)
	cliente := Cliente{
		Nombre:        *req.Nombre,
		Email:         *req.Email,
		Telefono:      *req.Telefono,
		Empresa:       nonEmpty(req.Empresa),
		Pais:          pais,
		FechaContacto: *req.FechaContacto,
		Estado:        estado,
	}

	created, err := s.repo.Insert(ctx, cliente)
	if err != nil {
		return nil, s.fail("create", err)
	}
	s.succeed("create")
	s.logger.Info("cliente created", slog.Int64("cliente_id", created.ID))
	s.publish(ctx, newEvent(EventCreated, created.ID, &created, s.clock.Now()))
	return &created, nil
}

// Get returns the cliente with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Cliente, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.fail("get", err)
	}
	s.succeed("get")
	return &c, nil
}

// List returns every cliente in insertion order, optionally restricted to one pais.
func (s *Service) List(ctx context.Context, req ListClientesRequest) ([]Cliente, error) {
	out, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, s.fail("list", err)
	}
	s.succeed("list")
	return out, nil
}

// Update validates every present field and applies them all, or none. There is no
// email uniqueness check on update.
func (s *Service) Update(ctx context.Context, id int64, req UpdateClienteRequest) (*Cliente, error) {
	updated, err := s.repo.Update(ctx, id, func(c *Cliente) error {
		if err := s.validator.Validate(req); err != nil {
			return err
		}
		applyUpdate(c, req)
		return nil
	})
	if err != nil {
		return nil, s.fail("update", err)
	}
	s.succeed("update")
	if !req.Empty() {
		s.logger.Info("cliente updated", slog.Int64("cliente_id", id))
		s.publish(ctx, newEvent(EventUpdated, id, &updated, s.clock.Now()))
	}
	return &updated, nil
}

// Delete permanently removes the cliente.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}
	s.succeed("delete")
	s.logger.Info("cliente deleted", slog.Int64("cliente_id", id))
	s.publish(ctx, newEvent(EventDeleted, id, nil, s.clock.Now()))
	return nil
}

// Count returns the number of stored clientes.
func (s *Service) Count() int {
	return s.repo.Len()
}

func (r CreateClienteRequest) complete() bool {
	for _, v := range []*string{r.Nombre, r.Email, r.Telefono, r.Pais, r.FechaContacto, r.Estado} {
		if v == nil || *v == "" {
			return false
		}
	}
	return true
}

func applyUpdate(c *Cliente, req UpdateClienteRequest) {
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Telefono != nil {
		c.Telefono = *req.Telefono
	}
	if req.Empresa != nil {
		c.Empresa = nonEmpty(req.Empresa)
	}
	if req.Pais != nil {
		c.Pais, _ = ParsePais(*req.Pais)
	}
	if req.FechaContacto != nil {
		c.FechaContacto = *req.FechaContacto
	}
	if req.Estado != nil {
		c.Estado, _ = ParseEstado(*req.Estado)
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

func (s *Service) publish(ctx context.Context, evt Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish cliente event",
			slog.String("type", string(evt.Type)),
			slog.Int64("cliente_id", evt.ClienteID),
			slog.Any("error", err),
		)
	}
}

func (s *Service) succeed(op string) {
	if s.recorder != nil {
		s.recorder.RecordOperation(op, "ok")
	}
}

func (s *Service) fail(op string, err error) error {
	outcome := "error"
	switch {
	case errors.Is(err, httpx.ErrIncomplete):
		outcome = "incomplete"
	case errors.Is(err, httpx.ErrValidation):
		outcome = "invalid"
	case errors.Is(err, httpx.ErrDuplicate):
		outcome = "conflict"
	case errors.Is(err, httpx.ErrNotFound):
		outcome = "not_found"
	default:
		s.logger.Error("cliente "+op+" failed", slog.Any("error", err))
	}
	if s.recorder != nil {
		s.recorder.RecordOperation(op, outcome)
	}
	return err
}
