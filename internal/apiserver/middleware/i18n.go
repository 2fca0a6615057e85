package middleware

import (
	"github.com/bllokusync/bllokusync/internal/common/cnst"
	"github.com/bllokusync/bllokusync/internal/i18n"
	"github.com/gin-gonic/gin"
)

// I18nMiddleware resolves the request's language preference from the
// X-Lang or Accept-Language header and stores it in the Gin context for
// the translation helpers.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.XLang, i18n.LanguageFromRequest(c.Request))
		c.Next()
	}
}
