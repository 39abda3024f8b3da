// Package mocks holds in-memory fakes of the repository ports for tests.
package mocks

import (
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

// Store is shared by the fake repositories so a test can seed users,
// services and appointments once and observe every write.
type Store struct {
	mu sync.Mutex

	// txMu serializes transactions the way row locks would.
	txMu sync.Mutex

	Users        map[uint]models.User
	Services     map[uint]models.Service
	Appointments map[uint]models.Appointment
	Payments     map[uint]models.Payment
	Audits       []models.AuditLog

	nextID uint
}

func NewStore() *Store {
	return &Store{
		Users:        map[uint]models.User{},
		Services:     map[uint]models.Service{},
		Appointments: map[uint]models.Appointment{},
		Payments:     map[uint]models.Payment{},
		nextID:       1000,
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.Users[u.ID] = u
	return u
}

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == 0 {
		svc.ID = s.id()
	}
	s.Services[svc.ID] = svc
	return svc
}

func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ap.ID == 0 {
		ap.ID = s.id()
	}
	s.Appointments[ap.ID] = ap
	return ap
}

func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Payments)
}

type snapshot struct {
	users        map[uint]models.User
	services     map[uint]models.Service
	appointments map[uint]models.Appointment
	payments     map[uint]models.Payment
	audits       []models.AuditLog
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:        copyMap(s.Users),
		services:     copyMap(s.Services),
		appointments: copyMap(s.Appointments),
		payments:     copyMap(s.Payments),
		audits:       append([]models.AuditLog(nil), s.Audits...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users = snap.users
	s.Services = snap.services
	s.Appointments = snap.appointments
	s.Payments = snap.payments
	s.Audits = snap.audits
}

// withRollback mimics a database transaction: any error restores the snapshot.
func (s *Store) withRollback(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) logAudit(entry *models.AuditLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.id()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.Audits = append(s.Audits, *entry)
}

// hydrate fills the relations gorm would preload.
func (s *Store) hydrate(ap models.Appointment) models.Appointment {
	ap.Client = s.Users[ap.ClientID]
	ap.Barber = s.Users[ap.BarberID]
	ap.Service = s.Services[ap.ServiceID]
	return ap
}
