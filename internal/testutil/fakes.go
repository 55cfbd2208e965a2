// Package testutil holds in-memory fakes of the repositories, the pet registry
// and the transaction manager for use case and service tests.
package testutil

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	activitylogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/activitylog"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	daycareRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/daycare"
	slotconfigRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/slotconfig"
	"github.com/m04kA/SMC-PetCareService/internal/integrations/petregistry"
)

// Failures injects errors into fake methods by method name.
type Failures struct {
	mu   sync.Mutex
	errs map[string]error
}

func (f *Failures) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errs == nil {
		f.errs = make(map[string]error)
	}
	f.errs[method] = err
}

func (f *Failures) err(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[method]
}

// TxManager runs closures inline and counts calls.
type TxManager struct {
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// Locker is an in-process lock.
type Locker struct {
	mu   sync.Mutex
	held map[string]bool
	Keys []string
}

func (l *Locker) Lock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = make(map[string]bool)
	}
	if l.held[key] {
		return "", false, nil
	}
	l.held[key] = true
	l.Keys = append(l.Keys, key)
	return key, true, nil
}

func (l *Locker) Unlock(_ context.Context, key, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

// Hold marks key as taken by somebody else.
func (l *Locker) Hold(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = make(map[string]bool)
	}
	l.held[key] = true
}

// Pets is a fake pet registry.
type Pets struct {
	Failures
	mu   sync.Mutex
	pets map[uuid.UUID]*domain.Pet
}

func (p *Pets) Add(ownerID uuid.UUID, name string) *domain.Pet {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pets == nil {
		p.pets = make(map[uuid.UUID]*domain.Pet)
	}
	pet := &domain.Pet{ID: uuid.New(), OwnerID: ownerID, Name: name}
	p.pets[pet.ID] = pet
	return pet
}

func (p *Pets) GetPet(_ context.Context, petID uuid.UUID) (*domain.Pet, error) {
	if err := p.err("GetPet"); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	pet, ok := p.pets[petID]
	if !ok {
		return nil, petregistry.ErrPetNotFound
	}
	cp := *pet
	return &cp, nil
}

// Catalog holds services, users and qualifications.
type Catalog struct {
	Failures
	mu        sync.Mutex
	services  map[uuid.UUID]*domain.Service
	staff     map[uuid.UUID]*domain.StaffMember
	qualified map[uuid.UUID]map[uuid.UUID]bool
	inUse     map[uuid.UUID]bool
	order     []uuid.UUID
}

func (c *Catalog) init() {
	if c.services == nil {
		c.services = make(map[uuid.UUID]*domain.Service)
		c.staff = make(map[uuid.UUID]*domain.StaffMember)
		c.qualified = make(map[uuid.UUID]map[uuid.UUID]bool)
	}
}

// AddService adds an active service; durationMinutes <= 0 leaves the duration unset.
func (c *Catalog) AddService(name string, durationMinutes int) *domain.Service {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	s := &domain.Service{ID: uuid.New(), Name: name, IsActive: true}
	if durationMinutes > 0 {
		s.DurationMinutes = &durationMinutes
	}
	c.services[s.ID] = s
	return s
}

func (c *Catalog) Deactivate(serviceID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.services[serviceID]; ok {
		s.IsActive = false
	}
}

func (c *Catalog) AddStaff(role domain.Role, first, last string) *domain.StaffMember {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	m := &domain.StaffMember{ID: uuid.New(), Role: role, FirstName: first, LastName: last}
	c.staff[m.ID] = m
	c.order = append(c.order, m.ID)
	return m
}

func (c *Catalog) Qualify(staffID, serviceID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	if c.qualified[serviceID] == nil {
		c.qualified[serviceID] = make(map[uuid.UUID]bool)
	}
	c.qualified[serviceID][staffID] = true
}

func (c *Catalog) GetService(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	if err := c.err("GetService"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (c *Catalog) GetStaff(_ context.Context, id uuid.UUID) (*domain.StaffMember, error) {
	if err := c.err("GetStaff"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.staff[id]
	if !ok {
		return nil, catalogRepo.ErrStaffNotFound
	}
	cp := *m
	return &cp, nil
}

func (c *Catalog) IsQualified(_ context.Context, staffID, serviceID uuid.UUID) (bool, error) {
	if err := c.err("IsQualified"); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.qualified[serviceID][staffID], nil
}

func (c *Catalog) GetQualifiedStaff(_ context.Context, serviceID uuid.UUID) ([]*domain.StaffMember, error) {
	if err := c.err("GetQualifiedStaff"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*domain.StaffMember, 0)
	for _, id := range c.order {
		if c.qualified[serviceID][id] {
			cp := *c.staff[id]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MarkInUse makes DeleteService fail as if appointments referenced the service.
func (c *Catalog) MarkInUse(serviceID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	if c.inUse == nil {
		c.inUse = make(map[uuid.UUID]bool)
	}
	c.inUse[serviceID] = true
}

// CreateService enforces the unique service name.
func (c *Catalog) CreateService(_ context.Context, s *domain.Service) (*domain.Service, error) {
	if err := c.err("CreateService"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	if c.nameTaken(s.Name, uuid.Nil) {
		return nil, catalogRepo.ErrServiceNameTaken
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	c.services[s.ID] = &cp
	return s, nil
}

func (c *Catalog) ListServices(_ context.Context, onlyActive bool) ([]*domain.Service, error) {
	if err := c.err("ListServices"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*domain.Service, 0, len(c.services))
	for _, s := range c.services {
		if onlyActive && !s.IsActive {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(x, y *domain.Service) int { return strings.Compare(x.Name, y.Name) })
	return out, nil
}

func (c *Catalog) UpdateService(_ context.Context, s *domain.Service) (*domain.Service, error) {
	if err := c.err("UpdateService"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.services[s.ID]; !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	if c.nameTaken(s.Name, s.ID) {
		return nil, catalogRepo.ErrServiceNameTaken
	}
	s.UpdatedAt = time.Now()
	cp := *s
	c.services[s.ID] = &cp
	return s, nil
}

// DeleteService cascades to qualifications like the staff_services foreign key.
func (c *Catalog) DeleteService(_ context.Context, id uuid.UUID) error {
	if err := c.err("DeleteService"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.services[id]; !ok {
		return catalogRepo.ErrServiceNotFound
	}
	if c.inUse[id] {
		return catalogRepo.ErrServiceInUse
	}
	delete(c.services, id)
	delete(c.qualified, id)
	return nil
}

func (c *Catalog) AssignQualification(_ context.Context, staffID, serviceID uuid.UUID) (bool, error) {
	if err := c.err("AssignQualification"); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	_, staffOK := c.staff[staffID]
	_, serviceOK := c.services[serviceID]
	if !staffOK || !serviceOK {
		return false, catalogRepo.ErrReferenceNotFound
	}
	if c.qualified[serviceID][staffID] {
		return false, nil
	}
	if c.qualified[serviceID] == nil {
		c.qualified[serviceID] = make(map[uuid.UUID]bool)
	}
	c.qualified[serviceID][staffID] = true
	return true, nil
}

func (c *Catalog) RevokeQualification(_ context.Context, staffID, serviceID uuid.UUID) error {
	if err := c.err("RevokeQualification"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.qualified[serviceID][staffID] {
		return catalogRepo.ErrQualificationNotFound
	}
	delete(c.qualified[serviceID], staffID)
	return nil
}

func (c *Catalog) nameTaken(name string, exceptID uuid.UUID) bool {
	for id, s := range c.services {
		if id != exceptID && s.Name == name {
			return true
		}
	}
	return false
}

// Availability holds staff availability blocks.
type Availability struct {
	Failures
	mu     sync.Mutex
	blocks []*domain.StaffAvailabilityBlock
}

func (a *Availability) Add(staffID uuid.UUID, start, end time.Time) *domain.StaffAvailabilityBlock {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := &domain.StaffAvailabilityBlock{ID: uuid.New(), StaffID: staffID, StartTime: start, EndTime: end, CreatedAt: time.Now()}
	a.blocks = append(a.blocks, b)
	return b
}

func (a *Availability) Create(_ context.Context, block *domain.StaffAvailabilityBlock) (*domain.StaffAvailabilityBlock, error) {
	if err := a.err("Create"); err != nil {
		return nil, err
	}
	if !block.StartTime.Before(block.EndTime) {
		return nil, availabilityRepo.ErrInvalidInterval
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	block.ID = uuid.New()
	block.CreatedAt = time.Now()
	cp := *block
	a.blocks = append(a.blocks, &cp)
	return block, nil
}

func (a *Availability) GetByID(_ context.Context, id uuid.UUID) (*domain.StaffAvailabilityBlock, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, b := range a.blocks {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, availabilityRepo.ErrBlockNotFound
}

func (a *Availability) ListByStaff(_ context.Context, staffID uuid.UUID, from, to time.Time) ([]*domain.StaffAvailabilityBlock, error) {
	if err := a.err("ListByStaff"); err != nil {
		return nil, err
	}
	return a.filter(func(b *domain.StaffAvailabilityBlock) bool {
		return b.StaffID == staffID && domain.Overlaps(b.StartTime, b.EndTime, from, to)
	}), nil
}

func (a *Availability) FindCovering(_ context.Context, staffID uuid.UUID, start, end time.Time) (*domain.StaffAvailabilityBlock, error) {
	if err := a.err("FindCovering"); err != nil {
		return nil, err
	}
	blocks := a.filter(func(b *domain.StaffAvailabilityBlock) bool {
		return b.StaffID == staffID && b.Covers(start, end)
	})
	if len(blocks) == 0 {
		return nil, availabilityRepo.ErrBlockNotFound
	}
	return blocks[0], nil
}

func (a *Availability) Delete(_ context.Context, id uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, b := range a.blocks {
		if b.ID == id {
			a.blocks = append(a.blocks[:i], a.blocks[i+1:]...)
			return nil
		}
	}
	return availabilityRepo.ErrBlockNotFound
}

func (a *Availability) filter(keep func(*domain.StaffAvailabilityBlock) bool) []*domain.StaffAvailabilityBlock {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*domain.StaffAvailabilityBlock, 0)
	for _, b := range a.blocks {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(x, y *domain.StaffAvailabilityBlock) int { return x.StartTime.Compare(y.StartTime) })
	return out
}

// Appointments stores appointments and enforces the partial unique index
// unique_staff_time_slot and the exclusion constraint appointments_no_overlap:
// both only consider appointments that are not CANCELLED or NO_SHOW.
type Appointments struct {
	Failures
	mu    sync.Mutex
	items []*domain.Appointment
}

// Seed stores a copy of a without overlap checks.
func (s *Appointments) Seed(a domain.Appointment) *domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = domain.AppointmentScheduled
	}
	s.items = append(s.items, &a)
	cp := a
	return &cp
}

// All returns copies of every stored appointment.
func (s *Appointments) All() []*domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Appointment, 0, len(s.items))
	for _, a := range s.items {
		cp := *a
		out = append(out, &cp)
	}
	return out
}

func (s *Appointments) conflicts(a *domain.Appointment) bool {
	if !a.IsActive() {
		return false
	}
	for _, other := range s.items {
		if other.ID == a.ID || other.StaffID != a.StaffID || !other.IsActive() {
			continue
		}
		if other.DateTime.Equal(a.DateTime) || other.Interval().Overlaps(a.Interval()) {
			return true
		}
	}
	return false
}

func (s *Appointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if err := s.err("Create"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflicts(a) {
		return nil, appointmentRepo.ErrSlotNotAvailable
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	s.items = append(s.items, &cp)
	return a, nil
}

func (s *Appointments) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if err := s.err("GetByID"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (s *Appointments) List(_ context.Context, f domain.AppointmentFilter) ([]*domain.Appointment, error) {
	if err := s.err("List"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if ownerID, ok := f.Scope.OwnerID(); ok && a.OwnerID != ownerID {
			continue
		}
		if f.StaffID != nil && a.StaffID != *f.StaffID {
			continue
		}
		if f.To != nil && !a.DateTime.Before(*f.To) {
			continue
		}
		if f.From != nil && !a.EndTime().After(*f.From) {
			continue
		}
		if f.Status != nil {
			if a.Status != *f.Status {
				continue
			}
		} else if !f.IncludeInactive && !a.IsActive() {
			continue
		}
		if f.ExcludeID != nil && a.ID == *f.ExcludeID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(x, y *domain.Appointment) int { return x.DateTime.Compare(y.DateTime) })
	return out, nil
}

func (s *Appointments) Update(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if err := s.err("Update"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, stored := range s.items {
		if stored.ID != a.ID {
			continue
		}
		if s.conflicts(a) {
			return nil, appointmentRepo.ErrSlotNotAvailable
		}
		a.UpdatedAt = time.Now()
		cp := *a
		s.items[i] = &cp
		return a, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (s *Appointments) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	if err := s.err("UpdateStatus"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		if a.ID != id {
			continue
		}
		next := *a
		next.Status = status
		if s.conflicts(&next) {
			return appointmentRepo.ErrSlotNotAvailable
		}
		a.Status = status
		a.UpdatedAt = time.Now()
		return nil
	}
	return appointmentRepo.ErrAppointmentNotFound
}

// SlotConfigs stores step configuration.
type SlotConfigs struct {
	Failures
	mu      sync.Mutex
	configs []*domain.SlotConfig
	nextID  int64
}

func (s *SlotConfigs) Create(_ context.Context, c *domain.SlotConfig) (*domain.SlotConfig, error) {
	if err := s.err("Create"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.configs {
		if sameService(existing.ServiceID, c.ServiceID) {
			return nil, slotconfigRepo.ErrConfigExists
		}
	}
	s.nextID++
	c.ID = s.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	s.configs = append(s.configs, &cp)
	return c, nil
}

func (s *SlotConfigs) GetByService(_ context.Context, serviceID *uuid.UUID) (*domain.SlotConfig, error) {
	if err := s.err("GetByService"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.configs {
		if sameService(c.ServiceID, serviceID) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, slotconfigRepo.ErrConfigNotFound
}

func (s *SlotConfigs) GetWithHierarchy(ctx context.Context, serviceID uuid.UUID) (*domain.SlotConfig, error) {
	if err := s.err("GetWithHierarchy"); err != nil {
		return nil, err
	}
	if c, err := s.GetByService(ctx, &serviceID); err == nil {
		return c, nil
	}
	return s.GetByService(ctx, nil)
}

func (s *SlotConfigs) Update(_ context.Context, c *domain.SlotConfig) (*domain.SlotConfig, error) {
	if err := s.err("Update"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.configs {
		if existing.ID == c.ID {
			c.UpdatedAt = time.Now()
			cp := *c
			s.configs[i] = &cp
			return c, nil
		}
	}
	return nil, slotconfigRepo.ErrConfigNotFound
}

func sameService(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Daycare stores sessions, bookings and rooms with the counter semantics of the SQL repository.
// Bookings follow the partial unique index daycare_bookings_active_pet.
type Daycare struct {
	Failures
	mu       sync.Mutex
	sessions []*domain.DaycareSession
	bookings []*domain.DaycareBooking
	rooms    map[uuid.UUID]*domain.DaycareRoom
}

func (d *Daycare) AddRoom(name string, capacity int) *domain.DaycareRoom {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rooms == nil {
		d.rooms = make(map[uuid.UUID]*domain.DaycareRoom)
	}
	room := &domain.DaycareRoom{ID: uuid.New(), Name: name, Capacity: capacity}
	d.rooms[room.ID] = room
	return room
}

// SeedSession stores a copy of s as is.
func (d *Daycare) SeedSession(s domain.DaycareSession) *domain.DaycareSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = domain.SessionAvailable
	}
	d.sessions = append(d.sessions, &s)
	cp := s
	return &cp
}

// SeedBooking stores a copy of b as is, without touching the session counter.
func (d *Daycare) SeedBooking(b domain.DaycareBooking) *domain.DaycareBooking {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	d.bookings = append(d.bookings, &b)
	cp := b
	return &cp
}

func (d *Daycare) CreateSession(_ context.Context, s *domain.DaycareSession) (*domain.DaycareSession, error) {
	if err := d.err("CreateSession"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.sessions {
		if sameDay(existing.Date, s.Date) {
			return nil, daycareRepo.ErrSessionDateTaken
		}
	}
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	d.sessions = append(d.sessions, &cp)
	return s, nil
}

func (d *Daycare) GetSession(_ context.Context, id uuid.UUID) (*domain.DaycareSession, error) {
	if err := d.err("GetSession"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if s := d.session(id); s != nil {
		cp := *s
		return &cp, nil
	}
	return nil, daycareRepo.ErrSessionNotFound
}

func (d *Daycare) GetSessionByDate(_ context.Context, date time.Time) (*domain.DaycareSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.sessions {
		if sameDay(s.Date, date) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, daycareRepo.ErrSessionNotFound
}

func (d *Daycare) ListSessions(_ context.Context, onlyBookable bool) ([]*domain.DaycareSession, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*domain.DaycareSession, 0)
	for _, s := range d.sessions {
		if onlyBookable && !s.IsBookable() {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(x, y *domain.DaycareSession) int { return x.Date.Compare(y.Date) })
	return out, nil
}

func (d *Daycare) UpdateSession(_ context.Context, s *domain.DaycareSession) (*domain.DaycareSession, error) {
	if err := d.err("UpdateSession"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	stored := d.session(s.ID)
	if stored == nil {
		return nil, daycareRepo.ErrSessionNotFound
	}
	for _, other := range d.sessions {
		if other.ID != s.ID && sameDay(other.Date, s.Date) {
			return nil, daycareRepo.ErrSessionDateTaken
		}
	}
	if stored.CurrentBookings > s.TotalCapacity {
		return nil, daycareRepo.ErrCapacityExceeded
	}
	stored.Date = s.Date
	stored.TotalCapacity = s.TotalCapacity
	stored.Price = s.Price
	stored.Status = s.Status
	stored.UpdatedAt = time.Now()
	s.CurrentBookings = stored.CurrentBookings
	s.UpdatedAt = stored.UpdatedAt
	return s, nil
}

func (d *Daycare) AdjustCurrentBookings(_ context.Context, id uuid.UUID, delta int) (*domain.DaycareSession, error) {
	if err := d.err("AdjustCurrentBookings"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.session(id)
	if s == nil {
		return nil, daycareRepo.ErrSessionNotFound
	}
	next := s.CurrentBookings + delta
	if next < 0 || next > s.TotalCapacity {
		return nil, daycareRepo.ErrCapacityExceeded
	}
	s.Status = s.StatusFor(next)
	s.CurrentBookings = next
	cp := *s
	return &cp, nil
}

func (d *Daycare) DeleteSession(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.sessions {
		if s.ID == id {
			d.sessions = append(d.sessions[:i], d.sessions[i+1:]...)
			return nil
		}
	}
	return daycareRepo.ErrSessionNotFound
}

func (d *Daycare) CreateBooking(_ context.Context, b *domain.DaycareBooking) (*domain.DaycareBooking, error) {
	if err := d.err("CreateBooking"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if b.Status.HoldsSeat() && d.activeBooking(b.PetID, b.SessionID, uuid.Nil) != nil {
		return nil, daycareRepo.ErrPetAlreadyBooked
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	d.bookings = append(d.bookings, &cp)
	return b, nil
}

func (d *Daycare) GetBooking(_ context.Context, id uuid.UUID) (*domain.DaycareBooking, error) {
	if err := d.err("GetBooking"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range d.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, daycareRepo.ErrBookingNotFound
}

func (d *Daycare) FindActiveBooking(_ context.Context, petID, sessionID uuid.UUID) (*domain.DaycareBooking, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b := d.activeBooking(petID, sessionID, uuid.Nil); b != nil {
		cp := *b
		return &cp, nil
	}
	return nil, daycareRepo.ErrBookingNotFound
}

func (d *Daycare) ListBookings(_ context.Context, scope domain.ScopedQuery) ([]*domain.DaycareBooking, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*domain.DaycareBooking, 0)
	for _, b := range d.bookings {
		if ownerID, ok := scope.OwnerID(); ok && b.OwnerID != ownerID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (d *Daycare) CountBookingsBySession(_ context.Context, sessionID uuid.UUID) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, b := range d.bookings {
		if b.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (d *Daycare) UpdateBooking(_ context.Context, b *domain.DaycareBooking) (*domain.DaycareBooking, error) {
	if err := d.err("UpdateBooking"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, stored := range d.bookings {
		if stored.ID != b.ID {
			continue
		}
		if b.Status.HoldsSeat() && d.activeBooking(b.PetID, b.SessionID, b.ID) != nil {
			return nil, daycareRepo.ErrPetAlreadyBooked
		}
		b.UpdatedAt = time.Now()
		cp := *b
		d.bookings[i] = &cp
		return b, nil
	}
	return nil, daycareRepo.ErrBookingNotFound
}

func (d *Daycare) DeleteBooking(_ context.Context, id uuid.UUID) error {
	if err := d.err("DeleteBooking"); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, b := range d.bookings {
		if b.ID == id {
			d.bookings = append(d.bookings[:i], d.bookings[i+1:]...)
			return nil
		}
	}
	return daycareRepo.ErrBookingNotFound
}

func (d *Daycare) GetRoom(_ context.Context, id uuid.UUID) (*domain.DaycareRoom, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if room, ok := d.rooms[id]; ok {
		cp := *room
		return &cp, nil
	}
	return nil, daycareRepo.ErrRoomNotFound
}

// HoldingSeats counts bookings of a session that hold a seat.
func (d *Daycare) HoldingSeats(sessionID uuid.UUID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, b := range d.bookings {
		if b.SessionID == sessionID && b.Status.HoldsSeat() {
			count++
		}
	}
	return count
}

func (d *Daycare) session(id uuid.UUID) *domain.DaycareSession {
	for _, s := range d.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (d *Daycare) activeBooking(petID, sessionID, exceptID uuid.UUID) *domain.DaycareBooking {
	for _, b := range d.bookings {
		if b.ID != exceptID && b.PetID == petID && b.SessionID == sessionID && b.Status.HoldsSeat() {
			return b
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ActivityLogs stores activity logs and lists them newest first like the SQL repository.
type ActivityLogs struct {
	Failures
	mu    sync.Mutex
	items []*domain.ActivityLog
}

// Seed stores a copy of l as is.
func (s *ActivityLogs) Seed(l domain.ActivityLog) *domain.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	s.items = append(s.items, &l)
	cp := l
	return &cp
}

func (s *ActivityLogs) Create(_ context.Context, l *domain.ActivityLog) (*domain.ActivityLog, error) {
	if err := s.err("Create"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = uuid.New()
	l.UpdatedAt = time.Now()
	cp := *l
	s.items = append(s.items, &cp)
	return l, nil
}

func (s *ActivityLogs) GetByID(_ context.Context, id uuid.UUID) (*domain.ActivityLog, error) {
	if err := s.err("GetByID"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.items {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, activitylogRepo.ErrActivityLogNotFound
}

func (s *ActivityLogs) List(_ context.Context, filter domain.ActivityLogFilter) ([]*domain.ActivityLog, error) {
	if err := s.err("List"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ownerID, scoped := filter.Scope.OwnerID()
	out := make([]*domain.ActivityLog, 0)
	for _, l := range s.items {
		if scoped && l.OwnerID != ownerID {
			continue
		}
		if filter.PetID != nil && l.PetID != *filter.PetID {
			continue
		}
		if filter.DaycareBookingID != nil && (l.DaycareBookingID == nil || *l.DaycareBookingID != *filter.DaycareBookingID) {
			continue
		}
		if filter.AppointmentID != nil && (l.AppointmentID == nil || *l.AppointmentID != *filter.AppointmentID) {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(x, y *domain.ActivityLog) int { return y.Timestamp.Compare(x.Timestamp) })
	return out, nil
}

func (s *ActivityLogs) Update(_ context.Context, l *domain.ActivityLog) (*domain.ActivityLog, error) {
	if err := s.err("Update"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stored := range s.items {
		if stored.ID == l.ID {
			stored.ActivityType = l.ActivityType
			stored.Details = l.Details
			stored.UpdatedAt = time.Now()
			cp := *stored
			return &cp, nil
		}
	}
	return nil, activitylogRepo.ErrActivityLogNotFound
}

func (s *ActivityLogs) Delete(_ context.Context, id uuid.UUID) error {
	if err := s.err("Delete"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.items {
		if l.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return activitylogRepo.ErrActivityLogNotFound
}

// Recorder collects domain metric events.
type Recorder struct {
	mu          sync.Mutex
	Created     int
	Rejections  []string
	Transitions []string
}

func (r *Recorder) AppointmentCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Created++
}

func (r *Recorder) BookingRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rejections = append(r.Rejections, reason)
}

func (r *Recorder) DaycareTransition(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Transitions = append(r.Transitions, from+"->"+to)
}
