package i18n

var catalogue = map[Language]map[string]string{
	English: {
		"common.all":   "All",
		"common.today": "Today",
		"common.error": "Error",

		"auth.alreadyExists":       "User with this email already exists",
		"auth.invalidCredentials":  "Invalid email or password",
		"auth.fillAllFields":       "Please fill in all fields",
		"auth.invalidEmail":        "Please enter a valid email",
		"auth.passwordMinLength":   "Password must be at least 6 characters",
		"auth.loginSuccess":        "Login successful!",
		"auth.registrationSuccess": "Registration successful!",
		"auth.loginRequired":       "Please log in first",

		"tasks.tasks":         "Tasks",
		"tasks.title":         "Title",
		"tasks.description":   "Description",
		"tasks.time":          "Time",
		"tasks.date":          "Date",
		"tasks.priority":      "Priority",
		"tasks.status":        "Status",
		"tasks.completed":     "Completed",
		"tasks.pending":       "Pending",
		"tasks.low":           "Low",
		"tasks.medium":        "Medium",
		"tasks.high":          "High",
		"tasks.noTasks":       "No tasks",
		"tasks.noTasksToday":  "No tasks for today",
		"tasks.noTasksFound":  "No tasks found",
		"tasks.taskCreated":   "Task created!",
		"tasks.taskUpdated":   "Task updated!",
		"tasks.taskDeleted":   "Task deleted!",
		"tasks.taskCompleted": "Task completed!",
		"tasks.taskReturned":  "Task returned to list",
		"tasks.enterTitle":    "Please enter task title",
		"tasks.saveError":     "An error occurred while saving the task",

		"home.hello":          "Hello!",
		"home.statistics":     "Statistics",
		"home.total":          "Total",
		"home.completed":      "Completed",
		"home.todayTasks":     "Today Tasks",
		"home.weekTasks":      "Week Tasks",
		"home.completedTasks": "Completed tasks",

		"calendar.calendar":      "Calendar",
		"calendar.noTasksOnDate": "No tasks on this date",

		"profile.profile":        "Profile",
		"profile.totalTasks":     "Total Tasks",
		"profile.pending":        "Pending",
		"profile.completionRate": "Completion Rate",
		"profile.logoutSuccess":  "Logged out",
		"profile.nameUpdated":    "Name updated",
		"profile.photoUpdated":   "Photo updated",
		"profile.photoRemoved":   "Photo removed",

		"pomodoro.pomodoro":           "Pomodoro",
		"pomodoro.focusTime":          "Focus Time",
		"pomodoro.shortBreak":         "Short Break",
		"pomodoro.longBreak":          "Long Break",
		"pomodoro.completedPomodoros": "Completed Pomodoros",
		"pomodoro.work":               "Work",
		"pomodoro.todaySessions":      "Today's Sessions",

		"timeBlocking.timeBlocking":   "Time Blocking",
		"timeBlocking.scheduledTasks": "Scheduled Tasks",
		"timeBlocking.freeTime":       "Free Time",
		"timeBlocking.blocks":         "blocks",
		"timeBlocking.daySummary":     "Day Summary",
		"timeBlocking.timeBlocks":     "Time Blocks",

		"notifications.upcomingTasks":   "Upcoming Tasks",
		"notifications.noNotifications": "No notifications",
		"notifications.taskReminder":    "Task starting soon",
		"notifications.startsIn":        "Starts in",
		"notifications.todayAgenda":     "Today's agenda",
		"notifications.sent":            "Notifications sent",
		"notifications.watching":        "Watching for upcoming tasks. Press Ctrl+C to stop.",

		"settings.workInterval":       "Work Interval",
		"settings.breakInterval":      "Break Interval",
		"settings.intervalCount":      "Interval Count",
		"settings.minutes":            "minutes",
		"settings.pomodoroSaved":      "Pomodoro settings saved",
		"settings.profileSaved":       "Profile settings saved",
		"settings.workIntervalRange":  "Work interval must be between 1 and 60 minutes",
		"settings.breakIntervalRange": "Break interval must be between 1 and 30 minutes",
		"settings.intervalCountRange": "Number of intervals must be between 1 and 10",
		"settings.language":           "Language",
		"settings.newPassword":        "New password",
		"settings.passwordChanged":    "Password changed",
		"settings.languageSaved":      "Language changed",
		"settings.english":            "English",
		"settings.russian":            "Russian",
	},
	Russian: {
		"common.all":   "Все",
		"common.today": "Сегодня",
		"common.error": "Ошибка",

		"auth.alreadyExists":       "Пользователь с таким email уже существует",
		"auth.invalidCredentials":  "Неверный email или пароль",
		"auth.fillAllFields":       "Пожалуйста, заполните все поля",
		"auth.invalidEmail":        "Введите корректный email",
		"auth.passwordMinLength":   "Пароль должен содержать минимум 6 символов",
		"auth.loginSuccess":        "Вход выполнен успешно!",
		"auth.registrationSuccess": "Регистрация успешна!",
		"auth.loginRequired":       "Пожалуйста, войдите в систему",

		"tasks.tasks":         "Задачи",
		"tasks.title":         "Название",
		"tasks.description":   "Описание",
		"tasks.time":          "Время",
		"tasks.date":          "Дата",
		"tasks.priority":      "Приоритет",
		"tasks.status":        "Статус",
		"tasks.completed":     "Выполнено",
		"tasks.pending":       "В ожидании",
		"tasks.low":           "Низкий",
		"tasks.medium":        "Средний",
		"tasks.high":          "Высокий",
		"tasks.noTasks":       "Нет задач",
		"tasks.noTasksToday":  "Нет задач на сегодня",
		"tasks.noTasksFound":  "Задачи не найдены",
		"tasks.taskCreated":   "Задача создана!",
		"tasks.taskUpdated":   "Задача обновлена!",
		"tasks.taskDeleted":   "Задача удалена",
		"tasks.taskCompleted": "Задача выполнена!",
		"tasks.taskReturned":  "Задача возвращена в список",
		"tasks.enterTitle":    "Пожалуйста, введите название задачи",
		"tasks.saveError":     "Произошла ошибка при сохранении задачи",

		"home.hello":          "Привет!",
		"home.statistics":     "Статистика",
		"home.total":          "Всего",
		"home.completed":      "Выполнено",
		"home.todayTasks":     "Задачи на сегодня",
		"home.weekTasks":      "Задачи на неделю",
		"home.completedTasks": "Выполненные задачи",

		"calendar.calendar":      "Календарь",
		"calendar.noTasksOnDate": "Нет задач на эту дату",

		"profile.profile":        "Профиль",
		"profile.totalTasks":     "Всего задач",
		"profile.pending":        "В ожидании",
		"profile.completionRate": "Процент выполнения",
		"profile.logoutSuccess":  "Выход выполнен",
		"profile.nameUpdated":    "Имя обновлено",
		"profile.photoUpdated":   "Фото обновлено",
		"profile.photoRemoved":   "Фото удалено",

		"pomodoro.pomodoro":           "Pomodoro",
		"pomodoro.focusTime":          "Время работы",
		"pomodoro.shortBreak":         "Короткий перерыв",
		"pomodoro.longBreak":          "Длинный перерыв",
		"pomodoro.completedPomodoros": "Завершенные помодоро",
		"pomodoro.work":               "Работа",
		"pomodoro.todaySessions":      "Сессии сегодня",

		"timeBlocking.timeBlocking":   "Time Blocking",
		"timeBlocking.scheduledTasks": "Запланированные задачи",
		"timeBlocking.freeTime":       "Свободное время",
		"timeBlocking.blocks":         "блоков",
		"timeBlocking.daySummary":     "Итоги дня",
		"timeBlocking.timeBlocks":     "Блоки времени",

		"notifications.upcomingTasks":   "Предстоящие задачи",
		"notifications.noNotifications": "Нет уведомлений",
		"notifications.taskReminder":    "Скоро начнётся задача",
		"notifications.startsIn":        "Начало через",
		"notifications.todayAgenda":     "План на сегодня",
		"notifications.sent":            "Отправлено уведомлений",
		"notifications.watching":        "Слежу за предстоящими задачами. Нажмите Ctrl+C для выхода.",

		"settings.workInterval":       "Интервал работы",
		"settings.breakInterval":      "Интервал перерыва",
		"settings.intervalCount":      "Количество интервалов",
		"settings.minutes":            "минут",
		"settings.pomodoroSaved":      "Настройки Pomodoro сохранены",
		"settings.profileSaved":       "Настройки профиля сохранены",
		"settings.workIntervalRange":  "Интервал работы должен быть от 1 до 60 минут",
		"settings.breakIntervalRange": "Интервал перерыва должен быть от 1 до 30 минут",
		"settings.intervalCountRange": "Количество интервалов должно быть от 1 до 10",
		"settings.language":           "Язык",
		"settings.newPassword":        "Новый пароль",
		"settings.passwordChanged":    "Пароль изменён",
		"settings.languageSaved":      "Язык изменен",
		"settings.english":            "Английский",
		"settings.russian":            "Русский",
	},
}
