// Package response builds the uniform JSON envelope returned by apikit
// handlers and writes it through Gin.
//
// Every response body is a JSON object with exactly one key:
//
//	{"success": <payload>}
//	{"error": {"code": "NOT_FOUND", "message": "Not Found"}}
//
// Successes default to 200; errors take the status of their kind. Handlers
// can return values instead of writing to the context:
//
//	r.GET("/items/:id", response.Handle(func(c *gin.Context) (Item, error) {
//	    item, ok := store.Get(c.Param("id"))
//	    if !ok {
//	        return Item{}, errors.NotFound("item not found")
//	    }
//	    return item, nil
//	}))
package response
