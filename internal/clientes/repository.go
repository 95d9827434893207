package clientes

import (
	"context"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Repository holds the authoritative collection of clientes.
type Repository interface {
	// Insert assigns the next id and stores c unless its email is already taken.
	Insert(ctx context.Context, c Cliente) (Cliente, error)
	Get(ctx context.Context, id int64) (Cliente, error)
	List(ctx context.Context, req ListClientesRequest) ([]Cliente, error)
	// Update applies fn to a copy of the record and commits it when fn returns nil.
	Update(ctx context.Context, id int64, fn func(*Cliente) error) (Cliente, error)
	Delete(ctx context.Context, id int64) error
	Len() int
}

type memoryRepository struct {
	mu      sync.Mutex
	records []Cliente
	nextID  int64
}

// NewMemoryRepository returns an empty in-process Repository. Ids start at 1 and are
// never reused, even after deletes.
func NewMemoryRepository() Repository {
	return &memoryRepository{nextID: 1}
}

func (r *memoryRepository) Insert(ctx context.Context, c Cliente) (Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.Email == c.Email {
			return Cliente{}, ErrDuplicateEmail
		}
	}
	c = c.clone()
	c.ID = r.nextID
	r.nextID++
	r.records = append(r.records, c)
	return c.clone(), nil
}

func (r *memoryRepository) Get(ctx context.Context, id int64) (Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return Cliente{}, ErrNotFound
	}
	return r.records[idx].clone(), nil
}

func (r *memoryRepository) List(ctx context.Context, req ListClientesRequest) ([]Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pais := norm.NFC.String(req.Pais)
	out := make([]Cliente, 0, len(r.records))
	for _, c := range r.records {
		if pais != "" && string(c.Pais) != pais {
			continue
		}
		out = append(out, c.clone())
	}
	return out, nil
}

func (r *memoryRepository) Update(ctx context.Context, id int64, fn func(*Cliente) error) (Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return Cliente{}, ErrNotFound
	}
	updated := r.records[idx].clone()
	if err := fn(&updated); err != nil {
		return Cliente{}, err
	}
	updated.ID = id
	r.records[idx] = updated
	return updated.clone(), nil
}

func (r *memoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.records = append(r.records[:idx], r.records[idx+1:]...)
	return nil
}

func (r *memoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *memoryRepository) indexOf(id int64) int {
	for i, c := range r.records {
		if c.ID == id {
			return i
		}
	}
	return -1
}
