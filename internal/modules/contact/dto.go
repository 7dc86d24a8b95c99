package contact

type CreateContactRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Company          string `json:"company"`
	Subject          string `json:"subject"`
	Message          string `json:"message"`
	ServiceInterest  string `json:"serviceInterest"`
	PreferredContact string `json:"preferredContact"`
}

// Origin carries request metadata recorded alongside a submission.
type Origin struct {
	IPAddress string
	UserAgent string
}

type UpdateContactRequest struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}

type AssignRequest struct {
	AssignedTo int64 `json:"assignedTo"`
}

type NoteRequest struct {
	Content string `json:"content"`
}
