package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/99minutos/library-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
	// dependents marks ids that are referenced by other records.
	dependents map[int64]bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), dependents: make(map[int64]bool)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, domain.ErrDuplicateIdentity
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return stored.ID, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, name string, avatarURL *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Name = name
	if avatarURL != nil {
		u.AvatarURL = *avatarURL
	}
	return nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	if r.dependents[id] {
		return domain.ErrUserHasDependents
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, req domain.PageRequest, limit int) ([]domain.PublicProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PublicProfile
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, u.PublicProfile())
		}
	}
	total := int64(len(out))
	start := req.Offset(limit)
	if start >= len(out) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// plainHasher avoids bcrypt cost in tests that do not exercise hashing.
type plainHasher struct {
	compared int
}

func (h *plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (h *plainHasher) Compare(hash, plain string) error {
	h.compared++
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

type stubIssuer struct {
	issued []domain.Principal
}

func (i *stubIssuer) Issue(subjectID int64, role domain.Role) (string, error) {
	i.issued = append(i.issued, domain.Principal{SubjectID: subjectID, Role: role})
	return "token-" + role.String(), nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
	err      error
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) Allowed(_ context.Context, identity string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[identity] < t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, identity string) error {
	t.failures[identity]++
	return t.err
}

func (t *stubThrottle) Reset(_ context.Context, identity string) error {
	delete(t.failures, identity)
	return t.err
}

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *stubRecorder) Record(event domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *stubRecorder) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type stubStore struct {
	keys []string
	err  error
}

func (s *stubStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.test/" + key, nil
}

type stubBookRepo struct {
	books  map[int64]*domain.Book
	nextID int64
}

func newStubBookRepo(books ...domain.Book) *stubBookRepo {
	r := &stubBookRepo{books: make(map[int64]*domain.Book)}
	for i := range books {
		b := books[i]
		r.books[b.ID] = &b
		if b.ID > r.nextID {
			r.nextID = b.ID
		}
	}
	return r
}

func (r *stubBookRepo) Create(_ context.Context, book *domain.Book) (int64, error) {
	r.nextID++
	b := *book
	b.ID = r.nextID
	r.books[b.ID] = &b
	return b.ID, nil
}

func (r *stubBookRepo) Update(_ context.Context, book *domain.Book) error {
	existing, ok := r.books[book.ID]
	if !ok || !existing.Active {
		return domain.ErrBookNotFound
	}
	cover := existing.CoverURL
	*existing = *book
	existing.Active = true
	if book.CoverURL == "" {
		existing.CoverURL = cover
	}
	return nil
}

func (r *stubBookRepo) Deactivate(_ context.Context, id int64) error {
	b, ok := r.books[id]
	if !ok || !b.Active {
		return domain.ErrBookNotFound
	}
	b.Active = false
	return nil
}

func (r *stubBookRepo) FindActive(_ context.Context, id int64) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok || !b.Active {
		return nil, domain.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookRepo) ListActive(_ context.Context, req domain.PageRequest, limit int) ([]domain.Book, int64, error) {
	var all []domain.Book
	for id := int64(1); id <= r.nextID; id++ {
		b, ok := r.books[id]
		if !ok || !b.Active {
			continue
		}
		if req.Category != "" && b.Category != req.Category {
			continue
		}
		if req.HasQuery() && !strings.Contains(strings.ToLower(b.Title+" "+b.Author), strings.ToLower(req.Query)) {
			continue
		}
		all = append(all, *b)
	}
	total := int64(len(all))
	start := req.Offset(limit)
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubBookRepo) Related(_ context.Context, id int64, limit int) ([]domain.Book, error) {
	src := r.books[id]
	var out []domain.Book
	for bid := int64(1); bid <= r.nextID && len(out) < limit; bid++ {
		b, ok := r.books[bid]
		if !ok || !b.Active || bid == id || b.Category != src.Category {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBookRepo) Categories(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, b := range r.books {
		if b.Active && b.Category != "" && !seen[b.Category] {
			seen[b.Category] = true
			out = append(out, b.Category)
		}
	}
	return out, nil
}

func activeBook(id int64, title, category string) domain.Book {
	return domain.Book{ID: id, Title: title, Author: "Author", Category: category, Price: 10, Active: true, CreatedAt: time.Now()}
}
