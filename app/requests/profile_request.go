package requests

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
)

// CreateProfileRequest 建档请求体
type CreateProfileRequest struct {
	Email    string `json:"email" valid:"email"`
	Name     string `json:"name" valid:"name"`
	Headline string `json:"headline" valid:"headline"`
	Bio      string `json:"bio" valid:"bio"`
}

// ValidateCreateProfile 校验建档请求
func ValidateCreateProfile(c *gin.Context) (*CreateProfileRequest, error) {
	var req CreateProfileRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}

	rules := govalidator.MapData{
		"email":    []string{"required", "email"},
		"name":     []string{"required", "min:2", "max:100"},
		"headline": []string{"max:255"},
		"bio":      []string{"max:2000"},
	}

	messages := govalidator.MapData{
		"email": []string{
			"required:邮箱不能为空",
			"email:邮箱格式不正确",
		},
		"name": []string{
			"required:名称不能为空",
			"min:名称长度不能小于 2 个字符",
			"max:名称长度不能超过 100 个字符",
		},
		"headline": []string{
			"max:签名长度不能超过 255 个字符",
		},
		"bio": []string{
			"max:简介长度不能超过 2000 个字符",
		},
	}

	if err := ValidateStruct(&req, rules, messages); err != nil {
		return nil, err
	}

	return &req, nil
}

// UpdateProfileRequest 资料更新请求，multipart 表单
// 头像文件单独在控制器里做大小与类型检查
type UpdateProfileRequest struct {
	Name      string `form:"name" valid:"name"`
	Bio       string `form:"bio" valid:"bio"`
	Headline  string `form:"headline" valid:"headline"`
	Location  string `form:"location" valid:"location"`
	Website   string `form:"website" valid:"website"`
	Twitter   string `form:"twitter" valid:"twitter"`
	LinkedIn  string `form:"linkedin" valid:"linkedin"`
	Instagram string `form:"instagram" valid:"instagram"`
}

// ValidateUpdateProfile 校验资料更新请求
func ValidateUpdateProfile(c *gin.Context) (*UpdateProfileRequest, error) {
	var req UpdateProfileRequest

	if err := c.ShouldBind(&req); err != nil {
		return nil, fmt.Errorf("解析表单失败: %w", err)
	}

	rules := govalidator.MapData{
		"name":     []string{"max:100"},
		"bio":      []string{"max:2000"},
		"headline": []string{"max:255"},
		"location": []string{"max:255"},
	}

	messages := govalidator.MapData{
		"name": []string{
			"max:名称长度不能超过 100 个字符",
		},
		"bio": []string{
			"max:简介长度不能超过 2000 个字符",
		},
		"headline": []string{
			"max:签名长度不能超过 255 个字符",
		},
		"location": []string{
			"max:所在地长度不能超过 255 个字符",
		},
	}

	if err := ValidateStruct(&req, rules, messages); err != nil {
		return nil, err
	}

	return &req, nil
}
