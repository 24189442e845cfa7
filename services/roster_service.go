package services

import (
	"context"
	"fmt"
	"log"

	"vetdesk-backend/models"
)

// RosterService serves read-only client roster views.
type RosterService struct {
	clients ClientStore
}

func NewRosterService(clients ClientStore) *RosterService {
	return &RosterService{clients: clients}
}

// RosterEntry is one client with aggregate counts. Degraded is set when a
// sub-count could not be computed and its field was zeroed instead.
type RosterEntry struct {
	Client           models.Client `json:"client"`
	PetCount         int64         `json:"petCount"`
	AppointmentCount int64         `json:"appointmentCount"`
	Degraded         bool          `json:"degraded,omitempty"`
}

// ListRoster returns every client with pet and appointment counts. A failed
// sub-count degrades that row to zeroed fields rather than failing the whole
// response.
func (s *RosterService) ListRoster(ctx context.Context) ([]RosterEntry, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	entries := make([]RosterEntry, 0, len(clients))
	for _, client := range clients {
		entry := RosterEntry{Client: client}

		if pets, err := s.clients.CountPets(ctx, client.ID); err != nil {
			log.Printf("[roster] pet count for client %s failed: %v", client.ID, err)
			entry.Degraded = true
		} else {
			entry.PetCount = pets
		}

		if appts, err := s.clients.CountAppointments(ctx, client.ID); err != nil {
			log.Printf("[roster] appointment count for client %s failed: %v", client.ID, err)
			entry.Degraded = true
		} else {
			entry.AppointmentCount = appts
		}

		entries = append(entries, entry)
	}
	return entries, nil
}
