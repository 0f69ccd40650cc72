// Package enrollment carries the commit workflow that turns a confirmed
// payment into an enrollment: ledger the payment, clear the cart line, move
// one seat from available to enrolled on the class.
package enrollment

import (
	"context"
	"time"

	"academy/models"
	"academy/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Stage names a sub-step of the commit workflow, so a partial failure always
// says which bookkeeping write is still owed.
type Stage string

const (
	StagePayment Stage = "payment_insert"
	StageCart    Stage = "cart_delete"
	StageClass   Stage = "class_update"
)

// PaymentFacts is what the payment gateway confirmation hands back: the
// original checkout identifiers plus the opaque confirmation token.
type PaymentFacts struct {
	OwnerEmail     string
	CartItemID     uint
	ClassID        uint
	Amount         float64
	TransactionRef string
}

// CommitResult reports each sub-step individually so a caller can detect
// partial completion. PaymentID is set whenever the ledger insert succeeded,
// even if the later stages did not.
type CommitResult struct {
	PaymentID    uint   `json:"payment_id"`
	ReceiptID    string `json:"receipt_id"`
	CartDeleted  bool   `json:"cart_deleted"`
	ClassUpdated bool   `json:"class_updated"`
	FailedStage  Stage  `json:"failed_stage,omitempty"`
}

// Workflow orchestrates the cart store, catalog store and payment ledger as
// one logical transition. It holds injected handles only; no globals.
type Workflow struct {
	db    *gorm.DB
	cache *redis.Client // optional, invalidated when class counters move
	log   *logrus.Logger
}

func NewWorkflow(db *gorm.DB, cache *redis.Client, log *logrus.Logger) *Workflow {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Workflow{db: db, cache: cache, log: log}
}

// Commit runs the three bookkeeping writes for a confirmed payment.
//
// The ledger insert is the durability point: if it fails nothing else runs
// and the error is returned. Once it succeeds the purchase is real, so the
// later stages never roll it back; their failures are recorded on the result
// (FailedStage plus the returned error) and left for an external
// reconciliation pass to retry. The three writes deliberately do not share a
// transaction for the same reason.
func (w *Workflow) Commit(facts PaymentFacts) (CommitResult, error) {
	result := CommitResult{}

	payment := models.Payment{
		OwnerEmail:     facts.OwnerEmail,
		CartItemID:     facts.CartItemID,
		ClassID:        facts.ClassID,
		Amount:         facts.Amount,
		TransactionRef: facts.TransactionRef,
		ReceiptID:      uuid.NewString(),
		Date:           time.Now(),
	}
	if err := w.db.Create(&payment).Error; err != nil {
		w.log.WithFields(logrus.Fields{
			"owner_email":     facts.OwnerEmail,
			"cart_item_id":    facts.CartItemID,
			"class_id":        facts.ClassID,
			"transaction_ref": facts.TransactionRef,
			"error":           err.Error(),
		}).Error("Payment insert failed, commit aborted")
		result.FailedStage = StagePayment
		return result, err
	}
	result.PaymentID = payment.ID
	result.ReceiptID = payment.ReceiptID

	// Scoped to the buyer: a payment only ever clears its own cart line,
	// someone else's item with the same id is left untouched. Idempotent: a
	// line already removed by an earlier attempt counts as deleted, only a
	// store error fails this stage.
	del := w.db.Unscoped().Where("id = ? AND owner_email = ?", facts.CartItemID, facts.OwnerEmail).Delete(&models.CartItem{})
	if del.Error != nil {
		result.FailedStage = StageCart
		w.reportPartial(facts, payment.ID, StageCart, del.Error)
		return result, del.Error
	}
	result.CartDeleted = true

	// One combined atomic update. Two separate writes could be torn by a
	// crash and break capacity conservation; seats > 0 keeps the counter
	// from ever going negative when checkouts race for the last seat.
	upd := w.db.Model(&models.Class{}).
		Where("id = ? AND seats > 0", facts.ClassID).
		Updates(map[string]interface{}{
			"enrolled_student": gorm.Expr("enrolled_student + 1"),
			"seats":            gorm.Expr("seats - 1"),
		})
	if upd.Error != nil {
		result.FailedStage = StageClass
		w.reportPartial(facts, payment.ID, StageClass, upd.Error)
		return result, upd.Error
	}
	if upd.RowsAffected == 0 {
		result.FailedStage = StageClass
		w.reportPartial(facts, payment.ID, StageClass, ErrNoSeatAvailable)
		return result, ErrNoSeatAvailable
	}
	result.ClassUpdated = true

	if w.cache != nil {
		utils.InvalidateClassCache(context.Background(), w.cache)
	}

	w.log.WithFields(logrus.Fields{
		"payment_id":      payment.ID,
		"owner_email":     facts.OwnerEmail,
		"class_id":        facts.ClassID,
		"amount":          facts.Amount,
		"transaction_ref": facts.TransactionRef,
	}).Info("Enrollment committed")

	return result, nil
}

// reportPartial logs a payment that is ledgered but whose bookkeeping lags.
// Reconciliation is external; the log line carries everything it needs.
func (w *Workflow) reportPartial(facts PaymentFacts, paymentID uint, stage Stage, err error) {
	w.log.WithFields(logrus.Fields{
		"payment_id":      paymentID,
		"owner_email":     facts.OwnerEmail,
		"cart_item_id":    facts.CartItemID,
		"class_id":        facts.ClassID,
		"transaction_ref": facts.TransactionRef,
		"failed_stage":    stage,
		"error":           err.Error(),
	}).Error("Payment recorded but bookkeeping incomplete")
}

// ListEnrollments returns a user's payments newest first. Pure read.
func (w *Workflow) ListEnrollments(email string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := w.db.Where("owner_email = ?", email).
		Order("date desc").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
