package game

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储对象与属性名
// gdata 的对象/属性名只使用字母和数字
const (
	scoresObject  = "scores"
	highScoreProp = "dermamonHighScore"
	widgetsObject = "widgets"
	flagsObject   = "flags"
)

// 布尔标记名
const (
	FlagFeedbackGiven = "feedbackGiven"
	FlagSeenDragTip   = "hasSeenDragInstructions"
)

// LocalStore 本地键值存储
//
// 基于 gdata 跨平台存储，值以 YAML 序列化。gdataManager 为 nil 时降级为内存存储：
// 本次运行内可读写，但不会持久化。
type LocalStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）

	mu     sync.Mutex
	memory map[string][]byte
}

// NewLocalStore 创建本地存储
func NewLocalStore(gdataManager *gdata.Manager) *LocalStore {
	if gdataManager == nil {
		log.Printf("[LocalStore] Warning: no gdata manager, values will not persist")
	}
	return &LocalStore{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
	}
}

// IsPersistent 是否会持久化到磁盘
func (s *LocalStore) IsPersistent() bool {
	return s.gdataManager != nil
}

// Save 序列化 value 并保存
func (s *LocalStore) Save(object, prop string, value interface{}) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", object, prop, err)
	}

	if s.gdataManager == nil {
		s.mu.Lock()
		s.memory[memoryKey(object, prop)] = data
		s.mu.Unlock()
		return nil
	}

	if err := s.gdataManager.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", object, prop, err)
	}
	return nil
}

// Load 读取并反序列化到 out
//
// 返回：
//   - bool: 值是否存在
//   - error: 读取或反序列化失败
func (s *LocalStore) Load(object, prop string, out interface{}) (bool, error) {
	var data []byte

	if s.gdataManager == nil {
		s.mu.Lock()
		stored, ok := s.memory[memoryKey(object, prop)]
		s.mu.Unlock()
		if !ok {
			return false, nil
		}
		data = stored
	} else {
		if !s.gdataManager.ObjectPropExists(object, prop) {
			return false, nil
		}
		loaded, err := s.gdataManager.LoadObjectProp(object, prop)
		if err != nil {
			return true, fmt.Errorf("failed to load %s/%s: %w", object, prop, err)
		}
		data = loaded
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("failed to unmarshal %s/%s: %w", object, prop, err)
	}
	return true, nil
}

// Exists 检查值是否存在
func (s *LocalStore) Exists(object, prop string) bool {
	if s.gdataManager == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, ok := s.memory[memoryKey(object, prop)]
		return ok
	}
	return s.gdataManager.ObjectPropExists(object, prop)
}

// Flag 读取布尔标记，不存在或读取失败时返回 false
func (s *LocalStore) Flag(name string) bool {
	var v bool
	if _, err := s.Load(flagsObject, name, &v); err != nil {
		log.Printf("[LocalStore] Warning: %v", err)
		return false
	}
	return v
}

// SetFlag 保存布尔标记
func (s *LocalStore) SetFlag(name string, value bool) error {
	return s.Save(flagsObject, name, value)
}

// WidgetPosition 悬浮按钮的屏幕位置
type WidgetPosition struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WidgetPosition 读取悬浮按钮保存的位置
func (s *LocalStore) WidgetPosition(widgetID string) (WidgetPosition, bool) {
	var pos WidgetPosition
	ok, err := s.Load(widgetsObject, widgetID, &pos)
	if err != nil {
		log.Printf("[LocalStore] Warning: %v", err)
		return WidgetPosition{}, false
	}
	return pos, ok
}

// SaveWidgetPosition 保存悬浮按钮位置
func (s *LocalStore) SaveWidgetPosition(widgetID string, pos WidgetPosition) error {
	return s.Save(widgetsObject, widgetID, pos)
}

func memoryKey(object, prop string) string {
	return object + "/" + prop
}
