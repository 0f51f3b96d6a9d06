package service

import (
	"github.com/egyakin/egyakin-api/internal/model"
	"github.com/egyakin/egyakin-api/internal/repository"
	"github.com/google/uuid"
)

// Event describes a domain occurrence that produces notifications
type Event struct {
	Type    model.NotificationType
	ActorID uuid.UUID

	// SubjectID references the entity the notification is about
	// (patient, post, group, consultation)
	SubjectID *uuid.UUID

	// GroupID scopes owner-targeted events (invite accepted, join request)
	GroupID *uuid.UUID

	// TargetDoctorID addresses single-recipient events (invite, card decision)
	TargetDoctorID *uuid.UUID

	// RecipientIDs is the explicit participant set of a consultation request
	RecipientIDs []uuid.UUID

	Title   string
	Content string
}

// RecipientResolver translates a domain event into a deduplicated list of
// recipient doctor IDs. The actor never receives their own notification.
// A scoping reference to a deleted entity resolves to an empty set rather
// than an error: notification fan-out must not fail the triggering action.
type RecipientResolver struct {
	doctorRepo *repository.DoctorRepository
	groupRepo  *repository.GroupRepository
}

func NewRecipientResolver(doctorRepo *repository.DoctorRepository, groupRepo *repository.GroupRepository) *RecipientResolver {
	return &RecipientResolver{
		doctorRepo: doctorRepo,
		groupRepo:  groupRepo,
	}
}

// Resolve computes the recipient set for an event. An empty result is valid
// and means the dispatch is a no-op.
func (r *RecipientResolver) Resolve(event Event) ([]uuid.UUID, error) {
	var candidates []uuid.UUID

	switch event.Type {
	case model.NotificationNewPatient, model.NotificationNewPost:
		ids, err := r.doctorRepo.VerifiedIDs(event.ActorID)
		if err != nil {
			return nil, err
		}
		candidates = ids

	case model.NotificationGroupInvite, model.NotificationSyndicateCard:
		if event.TargetDoctorID == nil {
			return nil, nil
		}
		// Deleted target doctor resolves to nobody
		if _, err := r.doctorRepo.FindByID(*event.TargetDoctorID); err != nil {
			return nil, nil
		}
		candidates = []uuid.UUID{*event.TargetDoctorID}

	case model.NotificationGroupInviteAccepted, model.NotificationGroupJoinRequest:
		if event.GroupID == nil {
			return nil, nil
		}
		group, err := r.groupRepo.FindByID(*event.GroupID)
		if err != nil {
			// Deleted group resolves to nobody
			return nil, nil
		}
		candidates = []uuid.UUID{group.OwnerID}

	case model.NotificationConsultation:
		// Deleted participants resolve away instead of failing the batch
		ids, err := r.doctorRepo.ExistingIDs(event.RecipientIDs)
		if err != nil {
			return nil, err
		}
		candidates = ids

	default:
		return nil, nil
	}

	return dedupeExcluding(candidates, event.ActorID), nil
}

// dedupeExcluding removes duplicates and the actor from the candidate list
func dedupeExcluding(ids []uuid.UUID, actor uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == actor || id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
