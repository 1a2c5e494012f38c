package entity

import "time"

// Category agrupa equipamentos (ex.: monitores, headsets, cabos).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Location é uma posição física do almoxarifado (linha, sala, bancada).
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Sector é o setor solicitante de uma movimentação.
type Sector struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
