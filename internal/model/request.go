package model

// RegisterBody is the payload for POST /auth/register.
type RegisterBody struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Locale   string `json:"locale"`
	OrgName  string `json:"orgName"`
}

// LoginBody is the payload for POST /auth/login.
type LoginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateOrganizationBody carries partial organization updates. Pointer
// fields distinguish "absent" from zero values.
type UpdateOrganizationBody struct {
	Name *string `json:"name,omitempty"`
}

// AddMemberBody is the payload for adding an organization member.
type AddMemberBody struct {
	Email string `json:"email" binding:"required,email"`
	Admin bool   `json:"admin"`
}

// AddProjectBody is the payload for creating a project.
type AddProjectBody struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateProjectBody carries partial project updates.
type UpdateProjectBody struct {
	Name *string `json:"name,omitempty"`
}

// AddTagBody is the payload for creating a tag.
type AddTagBody struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	ProjectID    string `json:"projectId"`
}

// UpdateTagBody carries partial tag updates.
type UpdateTagBody struct {
	Key          *string `json:"key,omitempty"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Instructions *string `json:"instructions,omitempty"`
	ProjectID    *string `json:"projectId,omitempty"`
}

// UpdateUserBody carries partial user updates.
type UpdateUserBody struct {
	Name   *string `json:"name,omitempty"`
	Locale *string `json:"locale,omitempty"`
}

// CheckoutBody is the payload for starting a hosted checkout session.
type CheckoutBody struct {
	PlanType string `json:"planType" binding:"required,plantype"`
	Period   string `json:"period" binding:"omitempty,oneof=monthly yearly"`
}

// GenerateAPIKeyBody is the payload for creating an API key.
type GenerateAPIKeyBody struct {
	KeyName string `json:"keyName" binding:"required,max=100"`
}
