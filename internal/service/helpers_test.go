package service_test

import (
	"fmt"

	"github.com/golang/mock/gomock"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

type eventTypeMatcher string

func (m eventTypeMatcher) Matches(x interface{}) bool {
	ev, ok := x.(map[string]any)
	return ok && ev["type"] == string(m)
}

func (m eventTypeMatcher) String() string {
	return fmt.Sprintf("event of type %q", string(m))
}

func eventOfType(t string) gomock.Matcher {
	return eventTypeMatcher(t)
}

func principalOf(u *models.User) *domain.Principal {
	return &domain.Principal{UserID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
}

func validAddress() models.Address {
	return models.Address{
		Street:  "12 Market Street",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
		Country: "US",
	}
}
