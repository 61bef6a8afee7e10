// Package isolate 提供隔离状态容器（Isolated State Container）实现
//
// 容器独占持有一份可变状态，所有修改通过准入队列串行化：
// • 状态私有，调用方无法直接访问（编译期保证）
// • 同一时刻最多一个操作"在容器内部"修改状态
// • 操作可在显式挂起点让出准入令牌，允许其他操作交错执行（可重入）
// • 纯函数操作可绕过准入队列，立即同步执行
//
// # 核心组件
//
// [Container] 是隔离状态容器，通过 [New] 创建，每个逻辑资源一个实例：
//
//	acct := isolate.New("account", Account{Balance: 1000})
//	defer acct.Close()
//
// [Container.Invoke] 提交一个状态操作，闭包内对状态的整段读-改-写
// 在令牌保护下执行；[Read] 和 [Update] 是常用投影/修改的泛型捷径。
//
// [OpContext.Suspend] 是显式挂起点：释放准入令牌、执行等待函数、
// 恢复前重新取得令牌。挂起期间其他排队操作可以运行，并能看到挂起
// 操作在挂起前完成的状态修改。
//
// [Container.Nonisolated] 执行与容器状态无关的纯函数，不排队、不取令牌。
//
// # 可重入语义
//
// 挂起点是唯一可观察到交错的位置。操作在 Suspend 前读到的状态，
// 恢复后可能已被其他操作修改——这是刻意保留的语义，与真实挂起点
// 行为一致。需要跨等待保持不变式的操作，应把等待放在 Invoke 闭包
// 内部阻塞完成（不调用 Suspend），整段临界区不会被打断。
//
// # 执行上下文绑定
//
// [Executor] 抽象完成回调的执行上下文。[SerialExecutor] 提供固定的
// 单 goroutine 执行上下文（如 UI 亲和线程），[Container.InvokeAsync]
// 的完成回调会投递到容器绑定的 Executor 上。
//
// # 错误语义
//
// 操作自身返回的错误原样透传给调用方，容器不重试、不回滚：
// 操作在出错前已完成的状态修改会被保留。容器关闭后新的准入请求
// 返回 [ErrContainerClosed]。
//
// # 顺序保证
//
// 容器只保证每个非挂起执行段的互斥，不保证提交顺序等于完成顺序。
// 操作可能挂起时，调用方不应依赖 FIFO 完成顺序。
//
// 完整使用示例请参考 example_test.go 或运行 go doc -all。
package isolate
