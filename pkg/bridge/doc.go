// Package bridge 提供异步范式桥接器
//
// 同一个异步调用可以用三种范式表达：回调、流、挂起/恢复。
// bridge 包让一种范式的异步源被另一种范式的消费方观察，
// 且不破坏任一范式的契约：
// • 恰好一次终结：消费方观察到的终结结果（成功值或错误）不多不少正好一次
// • 取消传播：消费方撤回兴趣后，尽力取消底层源，且绝不回调已销毁的消费方
// • 迟到丢弃：终结之后源的重复/迟到投递被静默丢弃，这是安全属性而非错误
//
// # 核心组件
//
// [Pending] 是规范内部表示：一次性终结单元，原子标志保证终结只发生
// 一次。三种转换都是它外面的薄前端，不是三套独立实现。
//
// 三种转换：
//
//	回调 → 挂起:  [AwaitCallback] / [FromCallback]
//	回调 → 流:    [StreamCallback]
//	流   → 挂起:  [AwaitFirst]
//
// # 回调 → 挂起
//
// 包装一个接受完成回调的遗留 API，调用方阻塞等待回调触发：
//
//	value, err := bridge.AwaitCallback(ctx, func(complete bridge.CompletionFunc[string]) {
//	    legacyFetch(func(v string, err error) { complete(v, err) })
//	})
//
// 行为异常的源多次触发回调时，第一次胜出，其余被丢弃。
//
// # 回调 → 流
//
// [StreamCallback] 返回的 [Stream] 至多发出一个成功或一个错误事件，
// 随后终止。[Stream.Cancel] 幂等。
//
// # 流 → 挂起
//
// [AwaitFirst] 订阅一个 [Source]，以第一个事件为终结结果，并立即
// 退订——即使流还会自然产出更多事件，也不再被处理。
//
// # 错误分类
//
// 源报告的错误在挂起/恢复侧包装为 [*ResolutionError]（支持 Unwrap）。
// [*Canceled] 是独立的终结信号，表示消费方在终结前撤回了兴趣，
// 不是失败，用 [IsCanceled] 区分。本包不做重试，重试是调用方的事。
//
// 完整使用示例请参考 example_test.go 或运行 go doc -all。
package bridge
