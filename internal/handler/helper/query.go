package helper

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryBool читает булев query-параметр. Отсутствующий или пустой — def.
func QueryBool(c *gin.Context, name string, def bool) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

// QueryInt читает целочисленный query-параметр. Отсутствующий или пустой — def.
func QueryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}
