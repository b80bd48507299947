package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния для создания группы (тренер)
	StateGroupName     UserState = "group_name"
	StateGroupSchedule UserState = "group_schedule"
	StateGroupProgram  UserState = "group_program"
	StateGroupStudents UserState = "group_students"

	// Состояния для оплаты занятий (ученик)
	StatePaymentProof UserState = "payment_proof"
	StatePaymentCount UserState = "payment_count"

	// Состояние для записи прогресса (ученик)
	StateProgressData UserState = "progress_data"

	// Состояние для вопроса к AI-помощнику (ученик)
	StateAIQuery UserState = "ai_query"

	// Состояние для добавления материала в базу знаний (тренер)
	StateKnowledgeContent UserState = "knowledge_content"
)

// UserData хранит временные данные пользователя во время диалога.
// Живёт от первого шага диалога до отмены или завершения.
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
