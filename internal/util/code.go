package util

import (
	"crypto/rand"
	"strings"
)

// 房间码字符集，去掉易混淆的 0/O/1/I/L
const roomCodeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// RoomCodeLength 房间码固定 5 位
const RoomCodeLength = 5

// GenerateRoomCode 生成可分享的短房间码，唯一性由数据库唯一索引兜底
func GenerateRoomCode() string {
	buf := make([]byte, RoomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 失败在常规平台上不可恢复
		panic(err)
	}
	for i, b := range buf {
		buf[i] = roomCodeCharset[int(b)%len(roomCodeCharset)]
	}
	return string(buf)
}

// IsValidRoomCode 校验房间码格式
func IsValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(roomCodeCharset, r) {
			return false
		}
	}
	return true
}
