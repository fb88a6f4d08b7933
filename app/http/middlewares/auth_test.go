package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"arena/app/models/user"
	"arena/pkg/database"
	"arena/pkg/database/migrations"
	"arena/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	database.Connect(sqlite.Open("file::memory:?cache=shared"), gormlogger.Default.LogMode(gormlogger.Silent))

	if err := database.AutoMigrate(migrations.RegisterTables()); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func sessionContext(sess *session.Session) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if sess != nil {
		c.Set("current_session", sess)
	}
	return c, recorder
}

// 未建档的会话 ProfileID 为 0，绝不能放行到仓库层，
// 否则所有未建档用户会共享 profile_id=0 这一行连击状态
func TestCurrentProfileIDRejectsUnprofiledSession(t *testing.T) {
	c, recorder := sessionContext(&session.Session{Email: "ghost@example.com"})

	profileID, ok := CurrentProfileID(c)
	assert.False(t, ok)
	assert.Zero(t, profileID)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// 响应要携带 not_found 标记，前端据此跳转建档页
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["not_found"])
}

func TestCurrentProfileIDBackfillsFromLocalProfile(t *testing.T) {
	profile := &user.UserProfile{
		CircleID: 7301,
		Email:    "returning@example.com",
		Name:     "Returning",
	}
	require.NoError(t, database.DB.Create(profile).Error)

	// 会话建立时档案还没落库，之后的请求应当回查补全
	sess := &session.Session{Email: "returning@example.com"}
	c, recorder := sessionContext(sess)

	profileID, ok := CurrentProfileID(c)
	require.True(t, ok)
	assert.Equal(t, profile.ID, profileID)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 会话对象同步回填
	assert.Equal(t, profile.ID, sess.ProfileID)
	assert.Equal(t, int64(7301), sess.CircleID)
}

func TestCurrentProfileIDPassesThroughProfiledSession(t *testing.T) {
	c, _ := sessionContext(&session.Session{Email: "done@example.com", ProfileID: 42})

	profileID, ok := CurrentProfileID(c)
	require.True(t, ok)
	assert.Equal(t, uint64(42), profileID)
}

func TestCurrentProfileIDRequiresSession(t *testing.T) {
	c, recorder := sessionContext(nil)

	_, ok := CurrentProfileID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
