package model

// Student represents a student record. Students are never hard-deleted;
// delete flips IsActive to false and list/get filter on it.
type Student struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"size:255;not null;index"`
	Email         string `json:"email" gorm:"size:255;not null"`
	Phone         string `json:"phone" gorm:"size:64"`
	Course        string `json:"course" gorm:"size:255"`
	EnrolmentDate string `json:"enrolment_date" gorm:"size:64"`
	IsActive      bool   `json:"is_active" gorm:"default:true;index"`
}
