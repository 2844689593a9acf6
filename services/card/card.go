package card

import (
	"errors"

	"offersense/models"
	"offersense/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrInvalidInput means a required field is missing or unusable.
	// Nothing is persisted when this is returned.
	ErrInvalidInput = errors.New("invalid card input")
	// ErrDuplicateCard means an active card with the same last four digits
	// already exists for this owner.
	ErrDuplicateCard = errors.New("card already registered")
	// ErrNotFound covers both a missing card and a card owned by someone
	// else, so existence never leaks across owners.
	ErrNotFound = errors.New("card not found or unauthorized")
)

// Service implements the card lifecycle against the store.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Submission is the write-only input for AddCard. The full number and CVV
// never leave this struct; only the last four digits and a fingerprint are
// stored.
type Submission struct {
	CardNumber string
	Network    string
	BankName   string
	HolderName string
	ExpiryDate string
}

// Result is the outcome of an AddCard call.
type Result struct {
	Card        models.Card
	Reactivated bool
}

// AddCard registers a card for ownerID, or revives a previously deleted
// card with the same last four digits. The decision is made inside one
// transaction; a concurrent add racing past the lookup hits the storage
// unique index and comes back as ErrDuplicateCard.
func (s *Service) AddCard(ownerID string, sub Submission) (*Result, error) {
	owner := utils.NormalizePhone(ownerID)
	if owner == "" || sub.BankName == "" || sub.HolderName == "" || sub.ExpiryDate == "" {
		return nil, ErrInvalidInput
	}

	lastFour, ok := utils.LastFour(sub.CardNumber)
	if !ok {
		return nil, ErrInvalidInput
	}

	network := sub.Network
	if network == "" {
		network = utils.DetectNetwork(sub.CardNumber)
	}
	if network == "" {
		return nil, ErrInvalidInput
	}

	fingerprint := utils.Fingerprint(sub.CardNumber)

	var res Result
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Card
		err := tx.
			Where("owner_id = ? AND last_four_digits = ?", owner, lastFour).
			Order("created_at desc").
			First(&existing).Error

		switch {
		case err == nil && existing.Status == models.CardStatusActive:
			return ErrDuplicateCard

		case err == nil:
			// Revive the deleted row, keeping its id and createdAt. The
			// status guard makes the flip conditional: if another add
			// revived it first, zero rows match and this add is the
			// duplicate.
			updated := tx.Model(&models.Card{}).
				Where("id = ? AND status = ?", existing.ID, models.CardStatusDeleted).
				Updates(map[string]interface{}{
					"network":     network,
					"bank_name":   sub.BankName,
					"holder_name": sub.HolderName,
					"expiry_date": sub.ExpiryDate,
					"fingerprint": fingerprint,
					"status":      models.CardStatusActive,
				})
			if updated.Error != nil {
				return translateConstraint(updated.Error)
			}
			if updated.RowsAffected == 0 {
				return ErrDuplicateCard
			}
			if err := tx.First(&existing, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			res = Result{Card: existing, Reactivated: true}
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := models.Card{
				ID:             uuid.NewString(),
				OwnerID:        owner,
				Network:        network,
				BankName:       sub.BankName,
				HolderName:     sub.HolderName,
				ExpiryDate:     sub.ExpiryDate,
				LastFourDigits: lastFour,
				Fingerprint:    fingerprint,
				Status:         models.CardStatusActive,
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return translateConstraint(err)
			}
			res = Result{Card: fresh}
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// ListCards returns the owner's active cards, most recent first. Deleted
// cards never appear. An owner with no cards gets an empty slice.
func (s *Service) ListCards(ownerID string) ([]models.Card, error) {
	owner := utils.NormalizePhone(ownerID)

	cards := []models.Card{}
	err := s.db.
		Where("owner_id = ? AND status = ?", owner, models.CardStatusActive).
		Order("created_at desc").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	return cards, nil
}

// CardsByIDs resolves the given card ids to the owner's active cards.
// Ids that don't exist, are deleted, or belong to another owner are
// silently dropped.
func (s *Service) CardsByIDs(ownerID string, ids []string) ([]models.Card, error) {
	owner := utils.NormalizePhone(ownerID)

	cards := []models.Card{}
	err := s.db.
		Where("owner_id = ? AND status = ? AND id IN ?", owner, models.CardStatusActive, ids).
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	return cards, nil
}

// DeleteCard soft-deletes the owner's card. A single conditional update
// scoped to (id, owner, active) means a miss, a repeat delete and a
// cross-owner attempt all land on the same ErrNotFound.
func (s *Service) DeleteCard(ownerID, cardID string) error {
	owner := utils.NormalizePhone(ownerID)

	res := s.db.Model(&models.Card{}).
		Where("id = ? AND owner_id = ? AND status = ?", cardID, owner, models.CardStatusActive).
		Update("status", models.CardStatusDeleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// translateConstraint maps storage unique-violation errors onto the
// duplicate outcome so callers never see raw driver errors.
func translateConstraint(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateCard
	}
	return err
}
