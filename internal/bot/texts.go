package bot

// User-visible texts. The bot speaks Russian; button labels are matched
// verbatim by the router.
const (
	btnAddCurrency    = "Добавить валюту"
	btnDeleteCurrency = "Удалить валюту"
	btnUpdateCurrency = "Изменить курс валюты"
	btnBack           = "Назад"

	btnExpense = "РАСХОД"
	btnIncome  = "ДОХОД"

	btnRUB = "RUB"
	btnUSD = "USD"
	btnEUR = "EUR"

	msgGreeting      = "Привет! Я бот для конвертации валют.\nВыберите команду:"
	msgGreetingAdmin = "Привет, я бот для конвертации валют (Вы обладаете правами администратора).\nВыберите команду:"
	msgChooseAction  = "Выберите действие:"
	msgMainMenu      = "Главное меню:"
	msgHelp          = "Я вас не понял. Используйте команды меню."
	msgNoAccess      = "Нет доступа к команде"
	msgInternalError = "Произошла ошибка. Попробуйте позже."

	msgEnterCurrencyName   = "Введите название валюты:"
	msgEnterCurrencyRate   = "Введите курс к рублю:"
	msgEnterNewRate        = "Введите новый курс к рублю:"
	msgEnterDeleteName     = "Введите название валюты для удаления:"
	msgEnterNumber         = "Пожалуйста, введите число:"
	msgCurrencyExists      = "Данная валюта уже существует"
	msgCurrencyMissing     = "Данная валюта не существует"
	msgCurrencyAdded       = "Валюта: %s успешно добавлена"
	msgCurrencyDeleted     = "Валюта %s успешно удалена"
	msgCurrencyDeleteFail  = "Валюта не найдена или произошла ошибка"
	msgCurrencyUpdated     = "Курс валюты %s успешно обновлен"
	msgCurrencyListHeader  = "Список валют:"
	msgNoCurrencies        = "Нет доступных валют"
	msgCurrencyListFailed  = "Ошибка при получении списка валют"
	msgEnterConvertAmount  = "Введите сумму:"
	msgConvertFailed       = "Ошибка конвертации. Проверьте название валюты."
	msgConvertResult       = "%s %s = %s RUB"

	msgEnterName          = "Введите ваше имя:"
	msgAlreadyRegistered  = "Вы уже зарегистрированы."
	msgRegistered         = "Регистрация успешна!"
	msgNotRegistered      = "Сначала зарегистрируйтесь с помощью /reg"
	msgNotRegisteredPlain = "Вы не зарегистрированы."
	msgAccountDeleted     = "Ваш аккаунт и все данные успешно удалены!"

	msgChooseOperationType = "Выберите тип операции:"
	msgChooseFromKeyboard  = "Пожалуйста, выберите один из предложенных вариантов."
	msgEnterOperationSum   = "Введите сумму операции (в рублях):"
	msgEnterOperationNum   = "Пожалуйста, введите число."
	msgEnterOperationDate  = "Введите дату операции в формате ГГГГ-ММ-ДД:"
	msgBadDate             = "Неверный формат даты. Используйте ГГГГ-ММ-ДД."
	msgOperationAdded      = "Операция успешно добавлена!"

	msgChooseViewCurrency = "Выберите валюту для отображения операций:"
	msgChooseViewFromList = "Пожалуйста, выберите одну из предложенных валют."
	msgNoOperations       = "У вас пока нет операций."
	msgOperationsHeader   = "Ваши операции:"
	msgRateFetchFailed    = "Не удалось получить курс валюты."
)
