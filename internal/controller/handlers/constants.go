package handlers

// Кнопки главного меню ученика
const (
	MenuTrainerSessions = "Занятия с тренером"
	MenuSchedule        = "График тренировок"
	MenuProgram         = "Программа тренировок"
	MenuNutrition       = "Питание"
	MenuProgress        = "Прогресс"
	MenuKnowledge       = "База знаний"
	MenuAI              = "AI-помощник"
)

// Кнопки меню тренера
const (
	MenuViewStudents    = "Просмотреть профили учеников"
	MenuViewGroups      = "Просмотреть список групп"
	MenuCreateGroup     = "Создать группу"
	MenuPendingPayments = "Заявки на оплату"
)

// Константы валидации
const (
	// Название группы
	GroupNameMinLength = 2
	GroupNameMaxLength = 100

	// Количество занятий в одной заявке на оплату
	MaxSessionsPerPayment = 100
)
