package responses

type Permission struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type RolePermissions struct {
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
}
