package dto

// LoginRequest entrada para login de operadores.
type LoginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"password"`
}

// LoginResponse token JWT y rol del operador.
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"rol"`
	ExpiresIn int    `json:"expira_en_min"`
}
