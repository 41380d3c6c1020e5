// Package middleware содержит промежуточные обработчики HTTP: идентификацию,
// логирование и rate-limiting.
//
// identity.go извлекает аутентифицированного субъекта. Сама аутентификация
// выполняется внешним identity-провайдером (шлюз проверяет токен и пробрасывает
// стабильный employee_id в заголовке X-Employee-ID) — сервис ей не занимается.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderEmployeeID — заголовок с идентификатором аутентифицированного сотрудника.
const HeaderEmployeeID = "X-Employee-ID"

const ctxKeyEmployeeID = "employee_id"

// Identity требует идентификатор субъекта и кладёт его в контекст запроса.
// Без заголовка запрос отклоняется с 401.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderEmployeeID)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + HeaderEmployeeID + " header",
			})
			return
		}
		c.Set(ctxKeyEmployeeID, id)
		c.Next()
	}
}

// EmployeeID возвращает идентификатор субъекта текущего запроса.
// Пустая строка означает, что Identity не отработал (ошибка роутинга).
func EmployeeID(c *gin.Context) string {
	return c.GetString(ctxKeyEmployeeID)
}
