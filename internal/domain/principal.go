package domain

// PrincipalKind тип проверенной личности
type PrincipalKind string

const (
	PrincipalAdmin PrincipalKind = "admin"
	PrincipalUser  PrincipalKind = "user"
)

// Principal результат проверки токена
type Principal struct {
	Kind   PrincipalKind
	UserID string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Kind == PrincipalAdmin
}

// IsEndUser true для пользователя чат-приложения с идентификатором
func (p *Principal) IsEndUser() bool {
	return p != nil && p.Kind == PrincipalUser && p.UserID != ""
}
