package game

import "log"

// HighScoreManager 本地最高分
//
// 最高分只增不减；加载失败时视为 0。
type HighScoreManager struct {
	store     *LocalStore
	highScore int
}

// NewHighScoreManager 创建最高分管理器并加载已保存的值
func NewHighScoreManager(store *LocalStore) *HighScoreManager {
	m := &HighScoreManager{store: store}

	var saved int
	ok, err := store.Load(scoresObject, highScoreProp, &saved)
	switch {
	case err != nil:
		log.Printf("[HighScore] Warning: Failed to load high score: %v (using 0)", err)
	case ok && saved > 0:
		m.highScore = saved
		log.Printf("[HighScore] Loaded high score: %d", saved)
	}
	return m
}

// HighScore 当前最高分
func (m *HighScoreManager) HighScore() int {
	return m.highScore
}

// Record 记录一局的最终得分
//
// 仅当 score 严格大于当前最高分时更新并持久化。
// 返回是否产生了新纪录；持久化失败时内存中的值仍然更新。
func (m *HighScoreManager) Record(score int) (bool, error) {
	if score <= m.highScore {
		return false, nil
	}
	m.highScore = score
	if err := m.store.Save(scoresObject, highScoreProp, score); err != nil {
		return true, err
	}
	log.Printf("[HighScore] New high score: %d", score)
	return true, nil
}
