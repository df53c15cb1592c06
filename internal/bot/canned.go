package bot

const welcomeText = `<b>Welcome!</b>
I post live market tables, news and risk updates to the channel and answer
commands here. Send /menu to see everything I can do.`

const menuText = `<b>Commands</b>
/price SYM - latest price and 24h change
/signal SYM - buy/sell/hold signal
/trends - watchlist trend table
/movers - top 5 gainers and losers
/news - latest headlines
/summary - trailing daily summary
/portfolio - show or update your portfolio note
/basics /strategies /scams /about - learn more`

const basicsText = `<b>Crypto Basics</b>
- A blockchain is a shared append-only ledger kept by many computers.
- Coins are native assets (BTC, ETH); tokens are built on top of a chain.
- Your keys, your coins: whoever holds the private key controls the funds.
- Prices here are quoted against USDT, a dollar-pegged stablecoin.`

const strategiesText = `<b>Common Strategies</b>
- DCA: buy a fixed amount on a schedule, ignore the noise.
- HODL: long-term holding through volatility.
- Swing trading: ride multi-day moves, cut losers early.
Nothing here is financial advice. Size positions so a full loss is survivable.`

const scamsText = `<b>Staying Safe</b>
- Nobody legitimate asks for your seed phrase. Ever.
- "Guaranteed returns" and urgency are the two biggest red flags.
- Double-check URLs; fake exchange sites harvest credentials.
- If a token can only be bought and never sold, it is a honeypot.`

const aboutText = `<b>About</b>
I watch the market around the clock: prices every half hour, news every
hour, a risk meter every 15 minutes and a daily summary each evening.
Data comes from public market and news APIs.`
