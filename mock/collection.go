package mock

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aetherid/console/schema"
	"github.com/gin-gonic/gin"
)

type record struct {
	id     int64
	fields map[string]any
}

// collection is an ordered in-memory table of JSON objects keyed by id
type collection struct {
	mux     sync.Mutex
	records []*record
	nextID  int64
}

func (c *collection) add(value any) (map[string]any, error) {
	fields, err := toFields(value)
	if err != nil {
		return nil, err
	}
	c.mux.Lock()
	defer c.mux.Unlock()
	c.nextID++
	fields["id"] = c.nextID
	c.records = append(c.records, &record{id: c.nextID, fields: fields})
	return maps.Clone(fields), nil
}

func (c *collection) find(id int64) (map[string]any, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	for _, candidate := range c.records {
		if candidate.id == id {
			return maps.Clone(candidate.fields), true
		}
	}
	return nil, false
}

func (c *collection) update(id int64, mutate func(fields map[string]any)) (map[string]any, bool) {
	c.mux.Lock()
	defer c.mux.Unlock()
	for _, candidate := range c.records {
		if candidate.id == id {
			mutate(candidate.fields)
			candidate.fields["id"] = id
			return maps.Clone(candidate.fields), true
		}
	}
	return nil, false
}

func (c *collection) remove(id int64) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	for i, candidate := range c.records {
		if candidate.id == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return true
		}
	}
	return false
}

func (c *collection) page(keyword, sortBy string, number, size int) *schema.Page[map[string]any] {
	c.mux.Lock()
	var matched []map[string]any
	for _, candidate := range c.records {
		if keyword == "" || matches(candidate.fields, keyword) {
			matched = append(matched, maps.Clone(candidate.fields))
		}
	}
	c.mux.Unlock()
	if sortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			return fmt.Sprint(matched[i][sortBy]) < fmt.Sprint(matched[j][sortBy])
		})
	}
	total := len(matched)
	ret := &schema.Page[map[string]any]{Content: []map[string]any{}, Page: schema.PageInfo{
		Size:          size,
		Number:        number,
		TotalElements: int64(total),
		TotalPages:    (total + size - 1) / size,
	}}
	if from := number * size; from < total {
		ret.Content = matched[from:min(from+size, total)]
	}
	return ret
}

func matches(fields map[string]any, keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, value := range fields {
		if text, ok := value.(string); ok && strings.Contains(strings.ToLower(text), keyword) {
			return true
		}
	}
	return false
}

func toFields(value any) (map[string]any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	ret := map[string]any{}
	if err = json.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// register exposes the standard REST operations of a collection under path
func (s *Service) register(group *gin.RouterGroup, path string, items *collection) {
	group.GET(path, func(c *gin.Context) {
		number, size := pageParams(c)
		respond(c, items.page("", c.Query("sortBy"), number, size))
	})
	group.GET(path+"/search", func(c *gin.Context) {
		number, size := pageParams(c)
		respond(c, items.page(c.Query("keyword"), c.Query("sortBy"), number, size))
	})
	group.GET(path+"/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		fields, ok := items.find(id)
		if !ok {
			fail(c, http.StatusNotFound, CodeNotFound, "resource not found")
			return
		}
		respond(c, fields)
	})
	group.POST(path, func(c *gin.Context) {
		body := map[string]any{}
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
			return
		}
		fields, err := items.add(body)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}
		respond(c, fields)
	})
	group.PUT(path+"/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		body := map[string]any{}
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
			return
		}
		fields, ok := items.update(id, func(fields map[string]any) {
			for k, v := range body {
				fields[k] = v
			}
		})
		if !ok {
			fail(c, http.StatusNotFound, CodeNotFound, "resource not found")
			return
		}
		respond(c, fields)
	})
	group.DELETE(path+"/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if !items.remove(id) {
			fail(c, http.StatusNotFound, CodeNotFound, "resource not found")
			return
		}
		respond(c, "deleted")
	})
}

func pageParams(c *gin.Context) (int, int) {
	number, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if size <= 0 {
		size = 10
	}
	return max(number, 0), size
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "invalid id")
		return 0, false
	}
	return id, true
}
