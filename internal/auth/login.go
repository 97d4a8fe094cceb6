package auth

import (
	"Doudizhu/config"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type LoginRequest struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
	Nonce     string `json:"nonce"`
}

type Handler struct {
	mu         sync.Mutex
	nonceStore map[string]bool
}

// 工厂方法：创建 handler
func NewHandler() *Handler {
	return &Handler{
		nonceStore: make(map[string]bool),
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "bad request"})
		return
	}

	// nonce 只允许使用一次
	h.mu.Lock()
	ok := h.nonceStore[req.Nonce]
	delete(h.nonceStore, req.Nonce)
	h.mu.Unlock()
	if !ok {
		c.JSON(400, gin.H{"error": "invalid nonce"})
		return
	}

	// 构造与 MetaMask personal_sign 完全一致的消息
	msg := "Sign this message to authenticate with Doudizhu. Nonce: " + req.Nonce
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	hash := crypto.Keccak256Hash([]byte(prefix))

	sig := req.Signature
	if len(sig) >= 2 && sig[:2] == "0x" {
		sig = sig[2:]
	}

	sigBytes, err := hex.DecodeString(sig)
	if err != nil || len(sigBytes) != 65 {
		c.JSON(400, gin.H{"error": "malformed signature"})
		return
	}

	// 修正 V 值
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}

	// 恢复签名者地址
	pubKey, err := crypto.SigToPub(hash.Bytes(), sigBytes)
	if err != nil {
		c.JSON(400, gin.H{"error": "signature verify failed"})
		return
	}
	recovered := crypto.PubkeyToAddress(*pubKey).Hex()

	if !strings.EqualFold(recovered, req.Address) {
		c.JSON(401, gin.H{"error": "signature mismatch"})
		return
	}

	// 签名验证成功，签发 JWT
	claims := jwt.MapClaims{
		"sub": req.Address,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtStr, err := token.SignedString([]byte(config.C.JWT.Secret))
	if err != nil {
		c.JSON(500, gin.H{"error": "jwt generation failed"})
		return
	}

	c.JSON(200, gin.H{
		"jwt": jwtStr,
	})
}
