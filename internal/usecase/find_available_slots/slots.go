package find_available_slots

import (
	"cmp"
	"slices"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// buildStaffSlots генерирует свободные слоты одного специалиста на день
// Кандидаты берутся из каждого блока доступности с шагом step и отбрасываются,
// если [start, start+duration) пересекается хотя бы с одной активной записью.
// Граничащие интервалы (конец записи ровно в начало слота) пересечением не считаются.
func buildStaffSlots(
	staff *domain.StaffMember,
	blocks []*domain.StaffAvailabilityBlock,
	appointments []*domain.Appointment,
	day domain.Interval,
	step time.Duration,
	duration time.Duration,
) []Slot {
	busy := make([]domain.Interval, 0, len(appointments))
	for _, a := range appointments {
		if a.IsActive() {
			busy = append(busy, a.Interval())
		}
	}

	slots := make([]Slot, 0)
	seen := make(map[time.Time]bool)

	for _, block := range blocks {
		for start := range domain.CandidateStarts(block.Interval(), day, step, duration) {
			candidate := domain.NewInterval(start, duration)
			if domain.OverlapsAny(candidate, busy) {
				continue
			}

			// Пересекающиеся блоки одного специалиста дают одинаковых кандидатов
			key := start.UTC()
			if seen[key] {
				continue
			}
			seen[key] = true

			slots = append(slots, Slot{
				StartTime: candidate.Start,
				EndTime:   candidate.End,
				StaffID:   staff.ID,
				StaffName: staff.FullName(),
			})
		}
	}

	return slots
}

// sortSlots сортирует слоты по времени начала, при равенстве по имени специалиста
func sortSlots(slots []Slot) {
	slices.SortStableFunc(slots, func(a, b Slot) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(a.StaffName, b.StaffName)
	})
}
