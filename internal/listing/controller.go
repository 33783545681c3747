package listing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"service-market-api/internal/formurl"
	"service-market-api/internal/logs"
	"service-market-api/internal/middlewares"
	"service-market-api/internal/schema"

	"github.com/gin-gonic/gin"
	"github.com/iancoleman/orderedmap"
)

type ListingController struct {
	Listings   ListingAPI
	Registry   schema.RegistryAPI
	Codec      formurl.Codec
	Validator  Validator
	Photos     PhotoUploader
	LogService *logs.LogService
}

type createRequest struct {
	ServiceTypeID int64           `json:"service_type_id" binding:"required"`
	Payload       json.RawMessage `json:"payload" binding:"required"`
	PhotoBase64   string          `json:"photo_base64"`
	PhotoRef      string          `json:"photo_ref"`
}

// POST /api/listings
//
// The payload is the web-app form's JSON submission, treated as
// untrusted: it is decoded, validated against the schema and only then
// persisted.
func (lc *ListingController) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := middlewares.UserID(c)

	s, err := lc.Registry.Lookup(req.ServiceTypeID)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип услуги не найден"})
			return
		}
		lc.logFailure(ownerID, "lookup_service_type", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load service type"})
		return
	}

	values, err := formurl.Decode(req.Payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "❌ Ошибка обработки данных формы"})
		return
	}

	if violations := lc.Validator.Validate(values, s); len(violations) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": violations[0], "violations": violations})
		return
	}

	photoRef := req.PhotoRef
	if req.PhotoBase64 != "" {
		photoRef, err = lc.Photos.UploadListingPhoto(req.PhotoBase64, ownerID)
		if err != nil {
			lc.logFailure(ownerID, "upload_photo", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
			return
		}
	}

	in := buildCreateInput(ownerID, s, values)
	in.PhotoRef = photoRef

	id, err := lc.Listings.Create(in)
	if err != nil {
		lc.logFailure(ownerID, "create_listing", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "❌ Не удалось создать услугу"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// buildCreateInput splits the validated submission into fixed columns and
// the schema-declared custom overflow, walking the schema so the stored
// custom_fields keep declared order.
func buildCreateInput(ownerID int64, s *schema.Schema, values map[string]string) CreateInput {
	city, street, house := formurl.SplitAddress(values["adress"])

	custom := orderedmap.New()
	for _, f := range s.Fields {
		if schema.IsBaselineName(f.Name) {
			continue
		}
		if v, ok := values[f.Name]; ok && strings.TrimSpace(v) != "" {
			custom.Set(f.Name, v)
		}
	}

	return CreateInput{
		OwnerID:     ownerID,
		SchemaID:    s.ID,
		Title:       values["title"],
		City:        city,
		District:    values["district"],
		Street:      street,
		House:       house,
		NumberPhone: values["number_phone"],
		Price:       values["price"],
		Custom:      custom,
	}
}

// GET /api/listings/form?type_id=N
func (lc *ListingController) CreateFormURL(c *gin.Context) {
	typeID, err := strconv.ParseInt(c.Query("type_id"), 10, 64)
	if err != nil || typeID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid type_id is required"})
		return
	}

	s, err := lc.Registry.Lookup(typeID)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип услуги не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load service type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": lc.Codec.EncodeCreateForm(s)})
}

// GET /api/listings/:id/form
func (lc *ListingController) EditFormURL(c *gin.Context) {
	rec, ok := lc.loadOwn(c)
	if !ok {
		return
	}

	s, err := lc.Registry.Lookup(rec.ServiceTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "❌ Ошибка получения формы"})
		return
	}

	custom, err := DecodeCustomFields(rec.CustomFields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "❌ Ошибка получения формы"})
		return
	}

	values := map[string]string{
		"title":        rec.Title,
		"district":     rec.District,
		"number_phone": rec.NumberPhone,
		"price":        rec.Price,
	}
	for _, name := range custom.Keys() {
		v, _ := custom.Get(name)
		values[name] = strings.TrimSpace(stringifyValue(v))
	}

	url := lc.Codec.EncodeEditForm(s, formurl.Prefill{
		City:   rec.City,
		Street: rec.Street,
		House:  rec.House,
		Values: values,
	})

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func stringifyValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// GET /api/listings/:id
func (lc *ListingController) Get(c *gin.Context) {
	rec, ok := lc.loadByParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GET /api/listings?status=
func (lc *ListingController) ListMine(c *gin.Context) {
	ownerID := middlewares.UserID(c)

	rows, err := lc.Listings.ListByOwner(ownerID, strings.TrimSpace(c.Query("status")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": rows})
}

type updateRequest struct {
	Payload json.RawMessage `json:"payload"`
	Fields  map[string]any  `json:"fields"`
}

// PATCH /api/listings/:id
//
// Accepts either a raw web-app edit submission (payload) or an explicit
// field map. Empty submission values are skipped so an untouched form
// field does not blank the column.
func (lc *ListingController) Update(c *gin.Context) {
	rec, ok := lc.loadOwn(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fields := req.Fields
	if len(req.Payload) > 0 {
		values, err := formurl.Decode(req.Payload)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "❌ Ошибка обработки данных формы"})
			return
		}

		s, err := lc.Registry.Lookup(rec.ServiceTypeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load service type"})
			return
		}
		fields = buildUpdateFields(s, values)
	}

	if err := lc.Listings.Update(rec.ID, fields); err != nil {
		lc.logFailure(rec.UserID, "update_listing", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "❌ Ошибка при обновлении услуги"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// buildUpdateFields keeps only non-empty submission values, splitting the
// address into its stored parts and routing non-baseline names into the
// custom_fields merge.
func buildUpdateFields(s *schema.Schema, values map[string]string) map[string]any {
	fields := map[string]any{}

	for _, name := range []string{"title", "district", "number_phone", "price"} {
		if v, ok := values[name]; ok && strings.TrimSpace(v) != "" {
			fields[name] = v
		}
	}

	if adress := strings.TrimSpace(values["adress"]); adress != "" {
		city, street, house := formurl.SplitAddress(adress)
		if city != "" {
			fields["city"] = city
		}
		if street != "" {
			fields["street"] = street
		}
		if house != "" {
			fields["house"] = house
		}
	}

	custom := map[string]string{}
	for _, f := range s.Fields {
		if schema.IsBaselineName(f.Name) {
			continue
		}
		if v, ok := values[f.Name]; ok && strings.TrimSpace(v) != "" {
			custom[f.Name] = v
		}
	}
	if len(custom) > 0 {
		fields["custom_fields"] = custom
	}

	return fields
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /api/listings/:id/status
func (lc *ListingController) SetStatus(c *gin.Context) {
	rec, ok := lc.loadOwn(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := lc.Listings.SetStatus(rec.ID, req.Status); err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "❌ Ошибка при изменении статуса"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// POST /api/listings/:id/views
func (lc *ListingController) IncrementViews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid listing id is required"})
		return
	}

	if err := lc.Listings.IncrementViews(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Услуга не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"counted": true})
}

// DELETE /api/listings/:id
func (lc *ListingController) Delete(c *gin.Context) {
	rec, ok := lc.loadOwn(c)
	if !ok {
		return
	}

	if err := lc.Listings.SoftDelete(rec.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "❌ Ошибка при удалении услуги"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GET /api/listings/:id/caption
func (lc *ListingController) Caption(c *gin.Context) {
	rec, ok := lc.loadByParam(c)
	if !ok {
		return
	}

	s, err := lc.Registry.Lookup(rec.ServiceTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load service type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"caption": Render(rec, s)})
}

func (lc *ListingController) loadByParam(c *gin.Context) (*Service, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid listing id is required"})
		return nil, false
	}

	rec, err := lc.Listings.GetByID(id, false)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Услуга не найдена"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load listing"})
		return nil, false
	}
	return rec, true
}

// loadOwn resolves the listing and enforces that the caller owns it.
func (lc *ListingController) loadOwn(c *gin.Context) (*Service, bool) {
	rec, ok := lc.loadByParam(c)
	if !ok {
		return nil, false
	}

	if rec.UserID != middlewares.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Это не ваша услуга"})
		return nil, false
	}
	return rec, true
}

func (lc *ListingController) logFailure(userID int64, action string, err error) {
	if lc.LogService == nil {
		return
	}
	_ = lc.LogService.Log(logs.SystemLog{
		Level:   "error",
		Service: "listing",
		UserID:  &userID,
		Action:  action,
		Message: err.Error(),
	}, nil)
}
