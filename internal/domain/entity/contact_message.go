package entity

type ContactMessage struct {
	ID        string `json:"id" firestore:"-"`
	Name      string `json:"name" firestore:"name"`
	Email     string `json:"email" firestore:"email"`
	Subject   string `json:"subject" firestore:"subject"`
	Message   string `json:"message" firestore:"message"`
	CreatedAt int64  `json:"created_at" firestore:"createdAt"`
}
