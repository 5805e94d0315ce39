package mapping

import (
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/minimarketpos/pos_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Role:         string(d.Role),
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         domain.UserRole(m.Role),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
