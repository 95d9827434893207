package clientes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/clientes/internal/platform/httpx"
)

type capturePublisher struct {
	events []Event
	err    error
}

func (p *capturePublisher) Publish(ctx context.Context, evt Event) error {
	p.events = append(p.events, evt)
	return p.err
}

type countingRecorder struct {
	counts map[string]int
}

func (r *countingRecorder) RecordOperation(operation, outcome string) {
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[operation+"/"+outcome]++
}

type failingRepo struct {
	Repository
	err error
}

func (r failingRepo) List(ctx context.Context, req ListClientesRequest) ([]Cliente, error) {
	return nil, r.err
}

func ptr(s string) *string { return &s }

func validCreate() CreateClienteRequest {
	return CreateClienteRequest{
		Nombre:        ptr("Juan Perez"),
		Email:         ptr("pedro@gmail.com"),
		Telefono:      ptr("+502-5855-8408"),
		Pais:          ptr("Guatemala"),
		FechaContacto: ptr("2024-09-11"),
		Estado:        ptr("Nuevo"),
	}
}

func newTestService(t *testing.T) (*Service, *capturePublisher, *countingRecorder) {
	t.Helper()
	pub := &capturePublisher{}
	rec := &countingRecorder{}
	svc := NewService(NewMemoryRepository(), ServiceConfig{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:     fixedClock(),
		Publisher: pub,
		Recorder:  rec,
	})
	return svc, pub, rec
}

func TestServiceCreateStoresEveryField(t *testing.T) {
	svc, pub, rec := newTestService(t)
	req := validCreate()
	req.Empresa = ptr("Bi")

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Juan Perez", created.Nombre)
	assert.Equal(t, "pedro@gmail.com", created.Email)
	assert.Equal(t, "+502-5855-8408", created.Telefono)
	require.NotNil(t, created.Empresa)
	assert.Equal(t, "Bi", *created.Empresa)
	assert.Equal(t, PaisGuatemala, created.Pais)
	assert.Equal(t, "2024-09-11", created.FechaContacto)
	assert.Equal(t, EstadoNuevo, created.Estado)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventCreated, pub.events[0].Type)
	assert.Equal(t, created.ID, pub.events[0].ClienteID)
	assert.Equal(t, 1, rec.counts["create/ok"])
}

func TestServiceCreateIDsIncrease(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var last int64
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		req := validCreate()
		req.Email = ptr(email)
		c, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Greater(t, c.ID, last)
		last = c.ID
	}
}

func TestServiceCreateWithoutEmpresaLeavesItAbsent(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Nil(t, created.Empresa)

	req := validCreate()
	req.Email = ptr("otro@example.com")
	req.Empresa = ptr("")
	created, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, created.Empresa)

	req = validCreate()
	req.Email = ptr("tercero@example.com")
	req.Empresa = ptr("   ")
	created, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, created.Empresa)
}

func TestServiceCreateAcceptsWhitespaceNombre(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validCreate()
	req.Nombre = ptr("   ")

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "   ", created.Nombre)
}

func TestServiceUsesInjectedValidator(t *testing.T) {
	later := ClockFunc(func() time.Time { return fixedNow.AddDate(1, 0, 0) })
	svc := NewService(NewMemoryRepository(), ServiceConfig{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:     fixedClock(),
		Validator: NewValidator(later),
	})
	req := validCreate()
	req.FechaContacto = ptr("2025-03-01")

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", created.FechaContacto)

	_, err = NewService(NewMemoryRepository(), ServiceConfig{Clock: fixedClock()}).Create(context.Background(), req)
	assert.Equal(t, MsgFechaInvalida, httpx.PublicMessage(err))
}

func TestServiceCreateCompletenessRunsFirst(t *testing.T) {
	svc, pub, rec := newTestService(t)

	req := CreateClienteRequest{Nombre: ptr("x"), Email: ptr("not-an-email")}
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.ErrorIs(t, err, httpx.ErrIncomplete)

	blank := validCreate()
	blank.Telefono = ptr("")
	_, err = svc.Create(context.Background(), blank)
	assert.ErrorIs(t, err, ErrIncomplete)

	spaces := validCreate()
	spaces.Telefono = ptr("   ")
	_, err = svc.Create(context.Background(), spaces)
	assert.Equal(t, MsgTelefonoInvalido, httpx.PublicMessage(err), "whitespace is present, so the field validator decides")

	assert.Empty(t, pub.events)
	assert.Equal(t, 2, rec.counts["create/incomplete"])
	assert.Equal(t, 1, rec.counts["create/invalid"])
}

func TestServiceCreateValidationOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateClienteRequest)
		want   string
	}{
		{"nombre before email", func(r *CreateClienteRequest) { r.Nombre = ptr("Jo"); r.Email = ptr("bad") }, MsgNombreInvalido},
		{"email before telefono", func(r *CreateClienteRequest) { r.Email = ptr("bad"); r.Telefono = ptr("bad") }, MsgEmailInvalido},
		{"telefono before pais", func(r *CreateClienteRequest) { r.Telefono = ptr("bad"); r.Pais = ptr("Perú") }, MsgTelefonoInvalido},
		{"pais before fecha", func(r *CreateClienteRequest) { r.Pais = ptr("Perú"); r.FechaContacto = ptr("mañana") }, MsgPaisInvalido},
		{"fecha before estado", func(r *CreateClienteRequest) { r.FechaContacto = ptr("2030-01-01"); r.Estado = ptr("Pendiente") }, MsgFechaInvalida},
		{"estado", func(r *CreateClienteRequest) { r.Estado = ptr("Pendiente") }, MsgEstadoInvalido},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			req := validCreate()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, httpx.ErrValidation)
			assert.Equal(t, tt.want, httpx.PublicMessage(err))
			assert.Equal(t, 0, svc.Count())
		})
	}
}

func TestServiceCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	dup := validCreate()
	dup.Nombre = ptr("Pedro Duplicado")
	dup.Pais = ptr("México")
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, MsgEmailRegistrado, httpx.PublicMessage(err))
	assert.Equal(t, 1, rec.counts["create/conflict"])

	invalidDup := validCreate()
	invalidDup.Estado = ptr("Pendiente")
	_, err = svc.Create(ctx, invalidDup)
	assert.ErrorIs(t, err, httpx.ErrValidation, "field validators run before the uniqueness check")
}

func TestServiceUpdateEmptyPayloadReturnsRecordUnchanged(t *testing.T) {
	svc, pub, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateClienteRequest{})
	require.NoError(t, err)
	assert.Equal(t, *created, *updated)
	assert.Len(t, pub.events, 1, "no event for a no-op update")
}

func TestServiceUpdateOnlyEmpresa(t *testing.T) {
	svc, pub, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateClienteRequest{Empresa: ptr("InnovaTech Actualizada")})
	require.NoError(t, err)

	require.NotNil(t, updated.Empresa)
	assert.Equal(t, "InnovaTech Actualizada", *updated.Empresa)
	expected := *created
	expected.Empresa = updated.Empresa
	assert.Equal(t, expected, *updated)

	require.Len(t, pub.events, 2)
	assert.Equal(t, EventUpdated, pub.events[1].Type)

	cleared, err := svc.Update(ctx, created.ID, UpdateClienteRequest{Empresa: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Empresa)

	_, err = svc.Update(ctx, created.ID, UpdateClienteRequest{Empresa: ptr("Bi")})
	require.NoError(t, err)
	cleared, err = svc.Update(ctx, created.ID, UpdateClienteRequest{Empresa: ptr("  ")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Empresa)
}

func TestServiceUpdateIsAllOrNothing(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, UpdateClienteRequest{
		Nombre:  ptr("Juan Actualizado"),
		Empresa: ptr("Nueva"),
		Estado:  ptr("Cerrado"),
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Equal(t, MsgEstadoInvalido, httpx.PublicMessage(err))

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *stored)
}

func TestServiceUpdateAppliesAllPresentFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateClienteRequest{
		Nombre:        ptr("Juan Actualizado"),
		Telefono:      ptr("+1-1234-5678"),
		Pais:          ptr("Estados Unidos"),
		FechaContacto: ptr("10/01/2024"),
		Estado:        ptr("En negociación"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Juan Actualizado", updated.Nombre)
	assert.Equal(t, "pedro@gmail.com", updated.Email)
	assert.Equal(t, "+1-1234-5678", updated.Telefono)
	assert.Equal(t, PaisEstadosUnidos, updated.Pais)
	assert.Equal(t, "10/01/2024", updated.FechaContacto)
	assert.Equal(t, EstadoEnNegociacion, updated.Estado)
}

func TestServiceUpdateDoesNotRecheckEmailUniqueness(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	first, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)
	second := validCreate()
	second.Email = ptr("otro@example.com")
	created, err := svc.Create(ctx, second)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateClienteRequest{Email: ptr(first.Email)})
	require.NoError(t, err)
	assert.Equal(t, first.Email, updated.Email)
}

func TestServiceUpdateMissingReportsNotFoundBeforeValidation(t *testing.T) {
	svc, _, rec := newTestService(t)

	_, err := svc.Update(context.Background(), 7, UpdateClienteRequest{Nombre: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, rec.counts["update/not_found"])
}

func TestServiceDeleteRemovesRecord(t *testing.T) {
	svc, pub, _ := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := svc.List(ctx, ListClientesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, pub.events, 2)
	assert.Equal(t, EventDeleted, pub.events[1].Type)
	assert.Nil(t, pub.events[1].Cliente)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestServicePublishFailureDoesNotFailRequest(t *testing.T) {
	svc, pub, _ := newTestService(t)
	pub.err = errors.New("redis down")

	created, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestServiceUnexpectedRepositoryErrorIsInternal(t *testing.T) {
	rec := &countingRecorder{}
	svc := NewService(failingRepo{Repository: NewMemoryRepository(), err: errors.New("disk on fire")}, ServiceConfig{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Recorder: rec,
	})

	_, err := svc.List(context.Background(), ListClientesRequest{})
	require.Error(t, err)
	assert.Equal(t, 500, httpx.StatusFor(err))
	assert.Equal(t, 1, rec.counts["list/error"])
}
