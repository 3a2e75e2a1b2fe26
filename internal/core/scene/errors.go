package scene

import "errors"

var (
	ErrDuplicateComponent = errors.New("component already attached")
	ErrUnknownComponent   = errors.New("unknown component type")
	ErrTransformRequired  = errors.New("transform cannot be removed")
	ErrNotAttached        = errors.New("component is not attached to this game object")
	ErrNoPrefab           = errors.New("game object has no prefab")
	ErrNoScene            = errors.New("no scene is open")
	ErrCycle              = errors.New("transform cannot be parented to its own descendant")
)
