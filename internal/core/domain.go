package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Chore    TaskCategory = "chore"
	Work     TaskCategory = "work"
	Personal TaskCategory = "personal"

	Income  TxType = "income"
	Expense TxType = "expense"
)

// PlaceholderName is used when a session is established without a display name.
const PlaceholderName = "Visitante"

type (
	TaskCategory string

	TxType string

	Money struct {
		Cents int64
	}

	Task struct {
		ID        string
		Text      string
		Completed bool
		Category  TaskCategory
		CreatedAt time.Time
	}

	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Type        TxType
		Date        time.Time
	}

	// Snapshot is the persisted aggregate: the display name plus both lists,
	// always serialized and stored as a single unit.
	Snapshot struct {
		Name         string
		Tasks        []Task
		Transactions []Transaction
	}
)

var (
	ErrEmptyText        = errors.New("empty task text")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidTxType    = errors.New("invalid transaction type")
	ErrInvalidCategory  = errors.New("invalid task category")
)

// DefaultSnapshot returns the aggregate used when nothing has been saved yet.
func DefaultSnapshot() Snapshot {
	return Snapshot{Name: PlaceholderName}
}

func (c TaskCategory) Validate() error {
	switch c {
	case Chore, Work, Personal:
		return nil
	default:
		return ErrInvalidCategory
	}
}

func (t TxType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidTxType
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Task) Validate() error {
	if len(strings.TrimSpace(t.Text)) == 0 {
		return ErrEmptyText
	}
	if len(t.Text) > 200 {
		return errors.New("task text too long (max 200 characters)")
	}
	return t.Category.Validate()
}

func (tx Transaction) Validate() error {
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	return tx.Type.Validate()
}

// AddTask prepends a new personal task. The input must already be sanitized;
// empty or whitespace-only text is rejected.
func (s *Snapshot) AddTask(text string) (Task, error) {
	task := Task{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(text),
		Category:  Personal,
		CreatedAt: time.Now(),
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	s.Tasks = append([]Task{task}, s.Tasks...)
	return task, nil
}

// ToggleTask flips the completed flag of the task with the given id.
// Unknown ids are a silent no-op; relative order is never changed.
func (s *Snapshot) ToggleTask(id string) bool {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks[i].Completed = !s.Tasks[i].Completed
			return true
		}
	}
	return false
}

// RemoveTask filters out the task with the given id. Removing an unknown id
// is a no-op, which makes the operation idempotent.
func (s *Snapshot) RemoveTask(id string) bool {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks = append(s.Tasks[:i:i], s.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// AddTransaction prepends a new ledger entry dated now. Entries are immutable
// once created; there is no update or delete counterpart.
func (s *Snapshot) AddTransaction(description string, amount Money, txType TxType) (Transaction, error) {
	tx := Transaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Type:        txType,
		Date:        time.Now(),
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	s.Transactions = append([]Transaction{tx}, s.Transactions...)
	return tx, nil
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing the underlying slices.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Name: s.Name}
	if len(s.Tasks) > 0 {
		out.Tasks = append([]Task(nil), s.Tasks...)
	}
	if len(s.Transactions) > 0 {
		out.Transactions = append([]Transaction(nil), s.Transactions...)
	}
	return out
}
