package i18n

// Message keys shared by handlers and the error handler.
const (
	KeyBadRequestTitle     = "errors.400.title"
	KeyNotFoundTitle       = "errors.404.title"
	KeyInternalErrorTitle  = "errors.500.title"
	KeyProductNotFound     = "catalogue.errors.product.not_found"
	KeyProductIDInvalid    = "catalogue.errors.product.id_invalid"
	KeyRequestBodyInvalid  = "catalogue.errors.request.body_invalid"
	KeyInternalErrorDetail = "catalogue.errors.internal"
)

var catalog = map[string]map[string]string{
	"en": {
		KeyBadRequestTitle:     "Bad request",
		KeyNotFoundTitle:       "Not found",
		"errors.405.title":     "Method not allowed",
		"errors.415.title":     "Unsupported media type",
		"errors.422.title":     "Unprocessable entity",
		KeyInternalErrorTitle:  "Internal server error",
		KeyProductNotFound:     "Product not found",
		KeyProductIDInvalid:    "Product id must be an integer",
		KeyRequestBodyInvalid:  "Request body must be a valid JSON object",
		KeyInternalErrorDetail: "The request could not be processed",
	},
	"ru": {
		KeyBadRequestTitle:     "Некорректный запрос",
		KeyNotFoundTitle:       "Не найдено",
		"errors.405.title":     "Метод не поддерживается",
		"errors.415.title":     "Неподдерживаемый тип данных",
		"errors.422.title":     "Необрабатываемые данные",
		KeyInternalErrorTitle:  "Внутренняя ошибка сервера",
		KeyProductNotFound:     "Товар не найден",
		KeyProductIDInvalid:    "Идентификатор товара должен быть целым числом",
		KeyRequestBodyInvalid:  "Тело запроса должно быть корректным JSON-объектом",
		KeyInternalErrorDetail: "Не удалось обработать запрос",
	},
}
