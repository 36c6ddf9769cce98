package domain

// FieldRules says which optional creation inputs a type accepts.
type FieldRules struct {
	Duration bool
	ByIP     bool
}

func FieldRulesFor(t PunishmentType) FieldRules {
	switch t {
	case TypeKick:
		return FieldRules{Duration: false, ByIP: true}
	case TypeFreeze, TypeWarn:
		return FieldRules{Duration: false, ByIP: false}
	case TypeBan, TypeMute, TypeSoftban, TypeUnknown:
		return FieldRules{Duration: true, ByIP: true}
	}
	panic("unreachable punishment type")
}

// CreateForm is the editable state of the creation form.
type CreateForm struct {
	Target   string
	Type     PunishmentType
	Duration string
	ByIP     bool
	Reason   string
}

// Apply clears inputs the current type does not accept.
func (f *CreateForm) Apply() FieldRules {
	rules := FieldRulesFor(f.Type)
	if !rules.Duration {
		f.Duration = ""
	}
	if !rules.ByIP {
		f.ByIP = false
	}
	return rules
}

// Request builds the submission body, re-applying the field rules first.
func (f CreateForm) Request(adminName string) CreatePunishmentRequest {
	f.Apply()
	return CreatePunishmentRequest{
		Target:    f.Target,
		Type:      f.Type.String(),
		Reason:    f.Reason,
		Duration:  f.Duration,
		ByIP:      f.ByIP,
		AdminName: adminName,
	}
}

type CreatePunishmentRequest struct {
	Target    string `json:"target"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	Duration  string `json:"duration"`
	ByIP      bool   `json:"byIp"`
	AdminName string `json:"adminName"`
}

type CreatePunishmentResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Target  string `json:"target"`
	Message string `json:"message"`
}

// Succeeded treats either an explicit success flag or an issued id as success.
func (r CreatePunishmentResponse) Succeeded() bool {
	return r.Success || r.ID != ""
}

type UpdateReportRequest struct {
	Status        string  `json:"status"`
	ModeratorUUID *string `json:"moderatorUuid"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
