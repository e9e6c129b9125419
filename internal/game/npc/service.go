// Package npc provides stationary service NPCs (vendors) that are attached to
// regions and never spawn or roam.
package npc

import (
	"fmt"
	"strings"
)

// ServiceType identifies the trade a stationary NPC offers. A region holds at
// most one NPC per ServiceType.
type ServiceType int

// Service types.
const (
	ServiceUnknown ServiceType = iota
	ServiceBlacksmith
	ServiceArmorer
	ServiceAlchemist
	ServiceInnkeeper
	ServiceBanker
	ServicePriest
)

var serviceTypeNames = map[ServiceType]string{
	ServiceBlacksmith: "blacksmith",
	ServiceArmorer:    "armorer",
	ServiceAlchemist:  "alchemist",
	ServiceInnkeeper:  "innkeeper",
	ServiceBanker:     "banker",
	ServicePriest:     "priest",
}

func (t ServiceType) String() string {
	if name, ok := serviceTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseServiceType returns the ServiceType named by s, ignoring case.
//
// Postcondition: Returns an error when s names no service type.
func ParseServiceType(s string) (ServiceType, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for t, name := range serviceTypeNames {
		if name == want {
			return t, nil
		}
	}
	return ServiceUnknown, fmt.Errorf("unknown service type %q", s)
}

// Service is a stationary NPC offering one ServiceType.
type Service interface {
	ServiceType() ServiceType
	Name() string
}

// Vendor is the standard Service implementation.
type Vendor struct {
	// Kind is the service this vendor offers.
	Kind ServiceType
	// DisplayName is the name shown to players.
	DisplayName string
}

// NewVendor creates a Vendor.
//
// Precondition: kind must not be ServiceUnknown; name must be non-empty.
// Postcondition: Returns a Vendor or a non-nil error.
func NewVendor(kind ServiceType, name string) (*Vendor, error) {
	if kind == ServiceUnknown {
		return nil, fmt.Errorf("npc.NewVendor: kind must be a known service type")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("npc.NewVendor: name must not be empty")
	}
	return &Vendor{Kind: kind, DisplayName: name}, nil
}

// ServiceType returns the vendor's trade.
func (v *Vendor) ServiceType() ServiceType { return v.Kind }

// Name returns the vendor's display name.
func (v *Vendor) Name() string { return v.DisplayName }
