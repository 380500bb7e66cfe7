// internal/event/types.go
package event

const (
	ShotFired   EventType = "ShotFired"   // Выстрел поставлен в очередь
	ShotHit     EventType = "ShotHit"     // Снаряд во что-то попал
	ShotExpired EventType = "ShotExpired" // Снаряд вышел по таймауту
	TargetHit   EventType = "TargetHit"   // Попадание по защищаемой цели
	GameOver    EventType = "GameOver"
)
