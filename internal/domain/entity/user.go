package entity

import "time"

// Papéis válidos para User.
const (
	RoleLeitor        = "leitor"        // somente leitura
	RoleEditor        = "editor"        // cadastra equipamentos e movimentações
	RoleDesenvolvedor = "desenvolvedor" // administra usuários e exclusões
)

// User representa um usuário do sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca plano no domínio após persistir
	Name         string
	Role         string // leitor, editor, desenvolvedor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole informa se r pertence ao enum de papéis.
func ValidRole(r string) bool {
	switch r {
	case RoleLeitor, RoleEditor, RoleDesenvolvedor:
		return true
	}
	return false
}
