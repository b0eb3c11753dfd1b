package transport

import "github.com/Skotchmaster/vehicle_api/internal/models"

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoggedAdmin struct {
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
	Token  string `json:"token"`
}

type AdminRequest struct {
	Email  string `json:"email"`
	Senha  string `json:"senha"`
	Perfil string `json:"perfil"`
}

type AdminView struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
}

type VehicleRequest struct {
	Nome  string `json:"nome"`
	Marca string `json:"marca"`
	Ano   int    `json:"ano"`
}

type ValidationErrors struct {
	Mensagens []string `json:"mensagens"`
}

type SearchResponse struct {
	Total int64            `json:"total"`
	Items []models.Vehicle `json:"itens"`
}

type Home struct {
	Mensagem string `json:"mensagem"`
	Doc      string `json:"doc"`
}
