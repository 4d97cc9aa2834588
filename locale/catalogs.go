package locale

// Catalog keys are the English source strings used by the roster composer
// and the command handlers. The help text stays English-only.

var ukrainian = map[string]string{
	"New event created":         "Створено нову подію",
	"Players limit":             "Ліміт гравців",
	"Event date and time":       "Дата та час події",
	"Event time out":            "Час події вийшов",
	"Time left":                 "Залишилось часу",
	"days":                      "днів",
	"and":                       "та",
	"hours":                     "годин",
	"Players list":              "Список гравців",
	"Reserve":                   "Резерв",
	"Played":                    "Зіграно",
	"from":                      "з",
	"Revoked applications":      "Скасовані заявки",
	"No applications yet":       "Заявок поки немає",
	"No events":                 "Немає подій",
	"No events to fix stat for": "Немає подій для фіксації статистики",
	"Registrations / Penalties": "Реєстрації / Штрафи",
	"+ Apply for participation": "+ Подати заявку на участь",
	"- Revoke application":      "- Скасувати заявку",
	"Current statistics for this chat room members:": "Поточна статистика учасників цього чату:",
}

var russian = map[string]string{
	"New event created":         "Создано новое событие",
	"Players limit":             "Лимит игроков",
	"Event date and time":       "Дата и время события",
	"Event time out":            "Время события вышло",
	"Time left":                 "Осталось времени",
	"days":                      "дней",
	"and":                       "и",
	"hours":                     "часов",
	"Players list":              "Список игроков",
	"Reserve":                   "Резерв",
	"Played":                    "Сыграно",
	"from":                      "из",
	"Revoked applications":      "Отменённые заявки",
	"No applications yet":       "Заявок пока нет",
	"No events":                 "Нет событий",
	"No events to fix stat for": "Нет событий для фиксации статистики",
	"Registrations / Penalties": "Регистрации / Штрафы",
	"+ Apply for participation": "+ Подать заявку на участие",
	"- Revoke application":      "- Отменить заявку",
	"Current statistics for this chat room members:": "Текущая статистика участников этого чата:",
}

var portuguese = map[string]string{
	"New event created":         "Novo evento criado",
	"Players limit":             "Limite de jogadores",
	"Event date and time":       "Data e hora do evento",
	"Event time out":            "Tempo do evento esgotado",
	"Time left":                 "Tempo restante",
	"days":                      "dias",
	"and":                       "e",
	"hours":                     "horas",
	"Players list":              "Lista de jogadores",
	"Reserve":                   "Reserva",
	"Played":                    "Jogou",
	"from":                      "de",
	"Revoked applications":      "Inscrições canceladas",
	"No applications yet":       "Nenhuma inscrição ainda",
	"No events":                 "Nenhum evento",
	"No events to fix stat for": "Nenhum evento para fixar estatísticas",
	"Registrations / Penalties": "Inscrições / Penalidades",
	"+ Apply for participation": "+ Inscrever-se",
	"- Revoke application":      "- Cancelar inscrição",
	"Current statistics for this chat room members:": "Estatísticas atuais dos membros deste chat:",
}
