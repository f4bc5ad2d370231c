package customer

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"order-events-demo/domain/shared"
)

// Business rule errors
var (
	ErrEmptyCustomerID    = errors.New("customer id must not be empty")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrInvalidPoints      = errors.New("points must be positive")
	ErrInsufficientPoints = errors.New("not enough loyalty points")
	ErrCustomerNotActive  = errors.New("customer is not active")
	ErrCustomerSuspended  = errors.New("customer is suspended")
)

// Status is the customer lifecycle state.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// ID identifies a customer.
type ID string

// NewID validates and builds a customer ID.
func NewID(value string) (ID, error) {
	if strings.TrimSpace(value) == "" {
		return "", ErrEmptyCustomerID
	}
	return ID(value), nil
}

// GenerateID returns a fresh customer ID.
func GenerateID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }

// Customer is an aggregate holding identity, contact details, lifecycle
// status and loyalty points.
type Customer struct {
	shared.EventRecorder

	id            ID
	name          string
	email         Email
	status        Status
	loyaltyPoints int
}

// NewCustomer builds a customer with an explicit ID.
func NewCustomer(id ID, name string, email Email) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	c := &Customer{
		id:     id,
		name:   name,
		email:  email,
		status: StatusActive,
	}
	c.Record(NewRegisteredEvent(c.id, c.name, c.email))
	return c, nil
}

// Create builds a customer with a generated ID.
func Create(name string, email Email) (*Customer, error) {
	return NewCustomer(GenerateID(), name, email)
}

func (c *Customer) ID() ID             { return c.id }
func (c *Customer) Name() string       { return c.name }
func (c *Customer) Email() Email       { return c.email }
func (c *Customer) Status() Status     { return c.status }
func (c *Customer) LoyaltyPoints() int { return c.loyaltyPoints }

func (c *Customer) IsActive() bool { return c.status == StatusActive }

// ChangeName replaces the display name.
func (c *Customer) ChangeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	c.name = name
	return nil
}

// ChangeEmail replaces the email address. Suspended customers cannot change
// their address.
func (c *Customer) ChangeEmail(email Email) error {
	if c.email == email {
		return nil
	}
	if c.status == StatusSuspended {
		return ErrCustomerSuspended
	}
	c.email = email
	return nil
}

// AddLoyaltyPoints grants points to an active customer.
func (c *Customer) AddLoyaltyPoints(points int) error {
	if points <= 0 {
		return ErrInvalidPoints
	}
	if c.status != StatusActive {
		return ErrCustomerNotActive
	}
	c.loyaltyPoints += points
	return nil
}

// UseLoyaltyPoints spends points. The balance never goes negative.
func (c *Customer) UseLoyaltyPoints(points int) error {
	if points <= 0 {
		return ErrInvalidPoints
	}
	if points > c.loyaltyPoints {
		return ErrInsufficientPoints
	}
	c.loyaltyPoints -= points
	return nil
}

// Deactivate marks the customer inactive.
func (c *Customer) Deactivate() {
	c.status = StatusInactive
}

// Suspend blocks the customer.
func (c *Customer) Suspend() {
	c.status = StatusSuspended
}

// Activate restores the customer to active.
func (c *Customer) Activate() {
	c.status = StatusActive
}
