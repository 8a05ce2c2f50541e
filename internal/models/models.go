package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&Store{},
		&StoreAvailability{},
		&Appointment{},
		&AuditLog{},
	}
}
