package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/gateway"
	"github.com/lshigami/edugress/internal/shop"
	"github.com/lshigami/edugress/internal/storage"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionsPage = `{"count":2,"next":null,"previous":null,"results":[
 {"id":11,"order":0,"test_question_data":{"id":1,"order":0,"description":{"text":"2+2?"},"question_type":0,"score":"1",
  "options":{"options":[{"text":"4"},{"text":"5"}]}},"is_answered":false,"user_answer":null},
 {"id":12,"order":1,"test_question_data":{"id":2,"order":1,"description":{"text":"3+3?"},"question_type":0,"score":"1",
  "options":{"options":[{"text":"6"},{"text":"7"}]}},"is_answered":false,"user_answer":null}]}`

const resultBody = `{"id":5,"correct_count":"1","is_ended":true,"score":"1.00","test_data":{"id":3,"name":"Sums"},
 "user_answers":[
 {"id":11,"order":0,"test_question_data":{"id":1,"order":0,"description":{"text":"2+2?"},"question_type":0,"score":"1",
  "options":{"options":[{"text":"4"},{"text":"5"}]}},"user_answer":{"answer":{"text":"4"}},"correct_answer":{"answer":{"text":"4"}},"flag":1,"score_for_answer":"1","checked":true},
 {"id":12,"order":1,"test_question_data":{"id":2,"order":1,"description":{"text":"3+3?"},"question_type":0,"score":"1",
  "options":{"options":[{"text":"6"},{"text":"7"}]}},"user_answer":{"answer":{"text":"7"}},"correct_answer":{"answer":{"text":"6"}},"flag":3,"score_for_answer":"0","checked":true}]}`

type backend struct {
	mu        sync.Mutex
	submitted map[int]json.RawMessage
	ended     int
	checkout  []json.RawMessage
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b := &backend{submitted: map[int]json.RawMessage{}}
	r := gin.New()
	r.POST("/login/", func(c *gin.Context) {
		var req map[string]string
		_ = c.ShouldBindJSON(&req)
		if req["password"] != "secret" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Unable to log in with provided credentials."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": "tok", "user": gin.H{"id": 1, "first_name": "Ann", "role": 0, "coins": "10"}})
	})
	r.GET("/user/", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Token tok" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": 1, "first_name": "Ann", "last_name": "Lee", "role": 0, "coins": "12"})
	})
	r.POST("/courses/tests/start/", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"user_test_id": 5})
	})
	r.GET("/courses/tests/user/answer/", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(questionsPage))
	})
	r.PATCH("/courses/tests/answer/", func(c *gin.Context) {
		var req struct {
			ID     int             `json:"question_answer_id"`
			Answer json.RawMessage `json:"user_answer"`
		}
		require.NoError(t, c.ShouldBindJSON(&req))
		b.mu.Lock()
		b.submitted[req.ID] = req.Answer
		b.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{})
	})
	r.POST("/courses/tests/end/", func(c *gin.Context) {
		b.mu.Lock()
		b.ended++
		b.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"total": 2, "amount": 2, "completion_percentage": 100})
	})
	r.GET("/courses/tests/results/:id/", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(resultBody))
	})
	r.GET("/store/", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{{"id": 9, "name": "Notebook", "price": "4", "stock": 3}})
	})
	r.POST("/store/checkout/", func(c *gin.Context) {
		raw, _ := c.GetRawData()
		b.mu.Lock()
		b.checkout = append(b.checkout, raw)
		b.mu.Unlock()
		c.JSON(http.StatusCreated, gin.H{"id": 100, "total": "8", "coins": "2"})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return b, srv
}

type harness struct {
	kv       *storage.MemoryKV
	sessions *storage.SessionRepository
	resume   *storage.ResumptionStore
	gw       *gateway.Client
	out      bytes.Buffer
}

func newHarness(t *testing.T, url string) *harness {
	t.Helper()
	gw, err := gateway.New(gateway.Config{BaseURL: url}, zerolog.Nop())
	require.NoError(t, err)
	kv := storage.NewMemoryKV()
	return &harness{
		kv:       kv,
		sessions: storage.NewSessionRepository(kv),
		resume:   storage.NewResumptionStore(kv),
		gw:       gw,
	}
}

func (h *harness) run(t *testing.T, input string, args ...string) error {
	t.Helper()
	sh := shop.New(h.gw, h.sessions, storage.NewCartStore(h.kv), zerolog.Nop())
	app := New(h.gw, h.sessions, h.resume, sh, zerolog.Nop(), strings.NewReader(input), &h.out)
	return app.Run(context.Background(), args)
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, h.sessions.Save(context.Background(), domain.Session{
		Token: "tok",
		User:  domain.User{ID: 1, FirstName: "Ann", Coins: decimal.NewFromInt(10)},
	}))
}

func TestRun_UnknownCommand(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)

	require.Error(t, h.run(t, "", "dance"))
	assert.Contains(t, h.out.String(), "usage: edugress")
}

func TestLogin_SavesSession(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)

	require.NoError(t, h.run(t, "secret\n", "login", "ann"))
	assert.Contains(t, h.out.String(), "Signed in as Ann")

	sess, err := h.sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
}

func TestLogin_RejectedShowsDetail(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)

	require.Error(t, h.run(t, "wrong\n", "login", "ann"))
	assert.Contains(t, h.out.String(), "Unable to log in with provided credentials.")

	_, err := h.sessions.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrSessionMissing)
}

func TestWhoami_RefreshesUser(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	h.signIn(t)

	require.NoError(t, h.run(t, "", "whoami"))
	assert.Contains(t, h.out.String(), "Ann Lee")

	sess, err := h.sessions.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12).Equal(sess.User.Coins))
}

func TestCommands_RequireSession(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)

	err := h.run(t, "", "take", "3")
	require.ErrorIs(t, err, storage.ErrSessionMissing)
	assert.Contains(t, h.out.String(), "edugress login")
}

func TestTake_AnswersEveryQuestionAndShowsResult(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	h.signIn(t)

	input := strings.Join([]string{
		":s", // nothing chosen yet
		"1", ":s",
		"2", ":s",
		"r 2",
		"q",
	}, "\n") + "\n"
	require.NoError(t, h.run(t, input, "take", "3"))

	out := h.out.String()
	assert.Contains(t, out, "Question 1 of 2")
	assert.Contains(t, out, "Question 2 of 2")
	assert.Contains(t, out, "Test complete.")
	assert.Contains(t, out, "Result: 50%")
	assert.Contains(t, out, "Correct answer: 6")

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.JSONEq(t, `{"answer":{"text":"4"}}`, string(b.submitted[11]))
	assert.JSONEq(t, `{"answer":{"text":"7"}}`, string(b.submitted[12]))
	assert.Equal(t, 1, b.ended)

	_, found, err := h.resume.FindResumableAttempt(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTake_QuitKeepsAttempt(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	h.signIn(t)

	require.NoError(t, h.run(t, "1\n:q\n", "take", "3"))
	assert.Contains(t, h.out.String(), "progress is saved")

	id, found, err := h.resume.FindResumableAttempt(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 5, id)
}

func TestResult_StudentCannotOverride(t *testing.T) {
	_, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	h.signIn(t)

	require.NoError(t, h.run(t, "score 1 0\nq\n", "result", "5"))
	assert.Contains(t, h.out.String(), "only curators and admins")
}

func TestCartAndCheckout(t *testing.T) {
	b, srv := newBackend(t)
	h := newHarness(t, srv.URL)
	h.signIn(t)

	require.NoError(t, h.run(t, "", "cart", "add", "9", "2"))
	assert.Contains(t, h.out.String(), "Total: 8 coins")

	require.NoError(t, h.run(t, "", "checkout", "Main", "st"))
	assert.Contains(t, h.out.String(), "Order 100 placed")
	assert.Contains(t, h.out.String(), "Coins left: 2")

	b.mu.Lock()
	require.Len(t, b.checkout, 1)
	assert.JSONEq(t, `{"items":[{"id":9,"amount":2}],"user_address":"Main st"}`, string(b.checkout[0]))
	b.mu.Unlock()

	h.out.Reset()
	require.NoError(t, h.run(t, "", "cart"))
	assert.Contains(t, h.out.String(), "Your cart is empty.")
}
