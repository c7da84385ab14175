package model

import "time"

// Project is a tracked portfolio project.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TechStack   []string  `json:"techStack"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectInput carries the caller-provided fields for creating a project.
type ProjectInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
}

// ProjectPatch is a partial update; nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	TechStack   *[]string `json:"techStack,omitempty"`
}

// Apply merges the patch over an existing record and returns the result.
func (p ProjectPatch) Apply(pr Project) Project {
	if p.Name != nil {
		pr.Name = *p.Name
	}

	if p.Description != nil {
		pr.Description = *p.Description
	}

	if p.TechStack != nil {
		pr.TechStack = *p.TechStack
	}

	return pr
}
